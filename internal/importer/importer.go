// Package importer loads students and courses from comma separated files.
//
// Both files start with a header line that is skipped: "id,name" for
// students and "code,name" for courses. Rows that name an already registered
// entity are reported as duplicates, rows that can't be parsed are reported
// as skipped; neither stops the import.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	lf "github.com/bigredeye/gradebook/internal/logfield"
	"github.com/bigredeye/gradebook/internal/models"
)

type Kind string

const (
	KindStudents Kind = "students"
	KindCourses  Kind = "courses"
)

type Sink interface {
	AddStudent(id, name string) bool
	AddCourse(code, name string) bool
}

type Row struct {
	Line   int
	Fields []string
	Reason string
}

type Result struct {
	Kind       Kind
	Loaded     int
	Duplicates []Row
	Skipped    []Row
}

func (r *Result) String() string {
	return fmt.Sprintf("%s: %d loaded, %d duplicates, %d skipped", r.Kind, r.Loaded, len(r.Duplicates), len(r.Skipped))
}

type Importer struct {
	sink   Sink
	logger *zap.Logger
}

func New(sink Sink, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{sink: sink, logger: logger.With(lf.Module("importer"))}
}

func (i *Importer) ImportStudents(r io.Reader) (*Result, error) {
	return i.importRows(KindStudents, r, i.sink.AddStudent)
}

func (i *Importer) ImportCourses(r io.Reader) (*Result, error) {
	return i.importRows(KindCourses, r, i.sink.AddCourse)
}

// ImportFile fails with an *models.IOError when the file can't be read; rows
// applied before a read error stay applied.
func (i *Importer) ImportFile(kind Kind, path string) (*Result, error) {
	log := i.logger.With(lf.Path(path), zap.String("kind", string(kind)))

	file, err := os.Open(path)
	if err != nil {
		log.Error("Failed to open file", zap.Error(err))
		return nil, models.NewIOError("open", path, err)
	}
	defer file.Close()

	var res *Result
	switch kind {
	case KindStudents:
		res, err = i.ImportStudents(file)
	case KindCourses:
		res, err = i.ImportCourses(file)
	default:
		return nil, errors.Errorf("Unknown import kind %q", kind)
	}

	if err != nil {
		log.Error("Failed to read file", zap.Error(err))
		ioErr := &models.IOError{}
		if errors.As(err, &ioErr) && ioErr.Path == "" {
			ioErr.Path = path
		}
		return res, err
	}

	log.Info("Imported file",
		zap.Int("loaded", res.Loaded),
		zap.Int("duplicates", len(res.Duplicates)),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

func (i *Importer) importRows(kind Kind, r io.Reader, add func(key, name string) bool) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	res := &Result{Kind: kind}
	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		// the first record is the header even when it fails to parse
		first := header
		header = false
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return res, models.NewIOError("read", "", err)
			}
			res.Skipped = append(res.Skipped, Row{Line: parseErr.Line, Reason: parseErr.Err.Error()})
			continue
		}
		if first {
			continue
		}

		line, _ := reader.FieldPos(0)
		row := Row{Line: line, Fields: record}
		if len(record) != 2 {
			row.Reason = fmt.Sprintf("expected 2 fields, got %d", len(record))
			res.Skipped = append(res.Skipped, row)
			continue
		}

		key, name := strings.TrimSpace(record[0]), strings.TrimSpace(record[1])
		if key == "" {
			row.Reason = "empty identifier"
			res.Skipped = append(res.Skipped, row)
			continue
		}

		if !add(key, name) {
			row.Reason = "duplicate"
			res.Duplicates = append(res.Duplicates, row)
			i.logger.Warn("Duplicate row", zap.String("kind", string(kind)), zap.Int("line", line), zap.String("key", key))
			continue
		}
		res.Loaded++
	}

	return res, nil
}
