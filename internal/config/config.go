package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/bigredeye/gradebook/pkg/conf"
)

const (
	ReportFormatText   = "text"
	ReportFormatPDF    = "pdf"
	ReportFormatBundle = "bundle"

	DefaultReportOutput  = "output.txt"
	DefaultPassThreshold = 6.0
	DefaultRankLimit     = 3
)

type Config struct {
	Data struct {
		Students string
		Courses  string
		Fixture  string
	}

	Report struct {
		Output string `validate:"required"`
		Format string `validate:"oneof=text pdf bundle"`
	}

	Grading struct {
		PassThreshold float64 `validate:"gte=0,lte=10"`
		RankLimit     int     `validate:"gte=0"`
	}

	Server struct {
		ListenAddress string `validate:"required"`
		CacheTTL      time.Duration
	}

	Log struct {
		File string
	}
}

func defaults() []conf.Option {
	return []conf.Option{
		conf.Default("report.output", DefaultReportOutput),
		conf.Default("report.format", ReportFormatText),
		conf.Default("grading.passthreshold", DefaultPassThreshold),
		conf.Default("grading.ranklimit", DefaultRankLimit),
		conf.Default("server.listenaddress", ":8080"),
		conf.Default("server.cachettl", "1m"),
	}
}

// ParseConfig layers defaults, the optional config file, GRADEBOOK_* env and
// any extra options (usually command line flags), in that order.
func ParseConfig(path string, options ...conf.Option) (*Config, error) {
	config := &Config{}

	all := append(defaults(), conf.EnvPrefix("GRADEBOOK"), conf.ConfigFile(path))
	all = append(all, options...)
	if err := conf.ParseConfig(config, all...); err != nil {
		return nil, errors.Wrap(err, "Failed to parse config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "Invalid config")
	}
	return nil
}
