// Package loader builds a gradebook from the data sources named in the
// config.
package loader

import (
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/config"
	"github.com/bigredeye/gradebook/internal/fixture"
	"github.com/bigredeye/gradebook/internal/gradebook"
	"github.com/bigredeye/gradebook/internal/importer"
	lf "github.com/bigredeye/gradebook/internal/logfield"
)

type Summary struct {
	Students *importer.Result
	Courses  *importer.Result
	Fixture  *fixture.Report

	// Failures holds the sources that could not be read at all.
	Failures []error
}

// Load imports the students file, then the courses file, then the fixture,
// so fixture enrollments may refer to imported entities. A source that
// fails is recorded in the summary and the rest are still loaded.
func Load(cfg *config.Config, logger *zap.Logger) (*gradebook.Book, *Summary) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.With(lf.Module("loader"))

	book := gradebook.New(logger)
	summary := &Summary{}
	imp := importer.New(book, logger)

	if path := cfg.Data.Students; path != "" {
		res, err := imp.ImportFile(importer.KindStudents, path)
		summary.Students = res
		if err != nil {
			summary.Failures = append(summary.Failures, err)
		}
	}

	if path := cfg.Data.Courses; path != "" {
		res, err := imp.ImportFile(importer.KindCourses, path)
		summary.Courses = res
		if err != nil {
			summary.Failures = append(summary.Failures, err)
		}
	}

	if path := cfg.Data.Fixture; path != "" {
		f, err := fixture.Load(path)
		if err != nil {
			log.Error("Failed to load fixture", lf.Path(path), zap.Error(err))
			summary.Failures = append(summary.Failures, err)
		} else {
			report := f.Apply(book, logger)
			summary.Fixture = &report
		}
	}

	stats := book.Stats()
	log.Info("Loaded gradebook",
		zap.Int("students", stats.Students),
		zap.Int("courses", stats.Courses),
		zap.Int("enrollments", stats.Enrollments),
		zap.Int("failures", len(summary.Failures)),
	)
	return book, summary
}
