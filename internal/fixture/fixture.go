// Package fixture describes a whole gradebook in YAML, the way a demo or a
// test run is seeded:
//
//	students:
//	  - id: "2025001"
//	    name: Ana Silva
//	courses:
//	  - code: MAT101
//	    name: Matemática
//	enrollments:
//	  - student: "2025001"
//	    course: MAT101
//	    grades: [8.5, 7.0]
package fixture

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	lf "github.com/bigredeye/gradebook/internal/logfield"
	"github.com/bigredeye/gradebook/internal/models"
)

type Enrollment struct {
	Student string
	Course  string
	Grades  []float64
}

type Fixture struct {
	Students    []models.Student
	Courses     []models.Course
	Enrollments []Enrollment
}

type Book interface {
	AddStudent(id, name string) bool
	AddCourse(code, name string) bool
	Enroll(studentID, courseCode string) bool
	AddGrade(studentID, courseCode string, value float64) (bool, error)
}

type Report struct {
	Students    int
	Courses     int
	Enrollments int
	Grades      int
	Rejected    int
}

func Parse(body []byte) (*Fixture, error) {
	fixture := &Fixture{}
	if err := yaml.UnmarshalStrict(body, fixture); err != nil {
		return nil, errors.Wrap(err, "Failed to unmarshal fixture")
	}
	return fixture, nil
}

func Load(path string) (*Fixture, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, models.NewIOError("read", path, err)
	}
	return Parse(body)
}

// Apply loads everything it can; duplicates, unknown references and invalid
// grades are logged and counted as rejected.
func (f *Fixture) Apply(book Book, logger *zap.Logger) Report {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.With(lf.Module("fixture"))

	report := Report{}
	for _, s := range f.Students {
		if book.AddStudent(s.ID, s.Name) {
			report.Students++
		} else {
			log.Warn("Skipping duplicate student", lf.StudentID(s.ID))
			report.Rejected++
		}
	}

	for _, c := range f.Courses {
		if book.AddCourse(c.Code, c.Name) {
			report.Courses++
		} else {
			log.Warn("Skipping duplicate course", lf.CourseCode(c.Code))
			report.Rejected++
		}
	}

	for _, e := range f.Enrollments {
		if book.Enroll(e.Student, e.Course) {
			report.Enrollments++
		} else {
			log.Warn("Enrollment was not created", lf.StudentID(e.Student), lf.CourseCode(e.Course))
		}

		for _, value := range e.Grades {
			ok, err := book.AddGrade(e.Student, e.Course, value)
			if err != nil || !ok {
				log.Warn("Skipping grade",
					lf.StudentID(e.Student),
					lf.CourseCode(e.Course),
					lf.Grade(value),
					zap.Error(err),
				)
				report.Rejected++
				continue
			}
			report.Grades++
		}
	}

	return report
}
