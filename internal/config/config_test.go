package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigredeye/gradebook/pkg/conf"
)

func TestDefaults(t *testing.T) {
	config, err := ParseConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultReportOutput, config.Report.Output)
	assert.Equal(t, ReportFormatText, config.Report.Format)
	assert.Equal(t, DefaultPassThreshold, config.Grading.PassThreshold)
	assert.Equal(t, DefaultRankLimit, config.Grading.RankLimit)
	assert.Equal(t, ":8080", config.Server.ListenAddress)
	assert.Equal(t, time.Minute, config.Server.CacheTTL)
	assert.Empty(t, config.Data.Students)
}

func TestFileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradebook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  students: students.csv
  courses: courses.csv
grading:
  passthreshold: 7
  ranklimit: 5
report:
  format: pdf
`), 0o644))

	t.Setenv("GRADEBOOK_GRADING_RANKLIMIT", "10")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "")
	require.NoError(t, flags.Parse([]string{"--output", "report.pdf"}))

	config, err := ParseConfig(path, conf.Flag("report.output", flags.Lookup("output")))
	require.NoError(t, err)

	assert.Equal(t, "students.csv", config.Data.Students)
	assert.Equal(t, 7.0, config.Grading.PassThreshold)
	assert.Equal(t, 10, config.Grading.RankLimit)
	assert.Equal(t, ReportFormatPDF, config.Report.Format)
	assert.Equal(t, "report.pdf", config.Report.Output)
}

func TestValidation(t *testing.T) {
	t.Setenv("GRADEBOOK_REPORT_FORMAT", "docx")
	_, err := ParseConfig("")
	assert.Error(t, err)
}

func TestThresholdOutOfRange(t *testing.T) {
	t.Setenv("GRADEBOOK_GRADING_PASSTHRESHOLD", "11")
	_, err := ParseConfig("")
	assert.Error(t, err)
}

func TestMissingFile(t *testing.T) {
	_, err := ParseConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
