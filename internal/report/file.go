package report

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	lf "github.com/bigredeye/gradebook/internal/logfield"
	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/scorer"
	"github.com/bigredeye/gradebook/pkg/targz"
)

const (
	FormatText = "text"
	FormatPDF  = "pdf"
	// FormatBundle is a tar.gz holding both the text and the pdf report.
	FormatBundle = "bundle"
)

const bundleName = "relatorio"

func render(format string, standings *scorer.Standings) ([]byte, error) {
	buf := &bytes.Buffer{}
	var err error
	switch format {
	case FormatText, "":
		err = Render(buf, standings)
	case FormatPDF:
		err = RenderPDF(buf, standings)
	case FormatBundle:
		err = renderBundle(buf, standings)
	default:
		err = errors.Errorf("Unknown report format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderBundle(buf *bytes.Buffer, standings *scorer.Standings) error {
	text, err := render(FormatText, standings)
	if err != nil {
		return err
	}
	pdf, err := render(FormatPDF, standings)
	if err != nil {
		return err
	}

	now := time.Now()
	return targz.Pack(buf,
		targz.File{Name: bundleName + ".txt", ModTime: now, Body: text},
		targz.File{Name: bundleName + ".pdf", ModTime: now, Body: pdf},
	)
}

// WriteFile replaces path with a freshly rendered report. The report is
// written next to path first, so a failed write never leaves a truncated
// file behind. Failures are *models.IOError.
func WriteFile(path, format string, standings *scorer.Standings, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.With(lf.Module("report"), lf.Path(path))

	body, err := render(format, standings)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		log.Error("Failed to create report", zap.Error(err))
		return models.NewIOError("create", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		log.Error("Failed to write report", zap.Error(err))
		return models.NewIOError("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		log.Error("Failed to write report", zap.Error(err))
		return models.NewIOError("write", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		log.Error("Failed to move report in place", zap.Error(err))
		return models.NewIOError("rename", path, err)
	}

	log.Info("Report written",
		zap.String("format", format),
		zap.String("size", units.HumanSize(float64(len(body)))),
	)
	return nil
}
