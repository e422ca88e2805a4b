// Package gradebook ties the registry, the enrollment ledger and the scorer
// together. Book is the only type in the module that is safe for concurrent
// use: one mutex covers every operation, compound ones included.
package gradebook

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/ledger"
	lf "github.com/bigredeye/gradebook/internal/logfield"
	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/registry"
	"github.com/bigredeye/gradebook/internal/scorer"
)

type Book struct {
	mu       sync.Mutex
	revision *atomic.Uint64

	registry *registry.Registry
	ledger   *ledger.Ledger
	scorer   *scorer.Scorer

	logger *zap.Logger
}

func New(logger *zap.Logger) *Book {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := registry.New()
	l := ledger.New(r)
	b := &Book{
		revision: atomic.NewUint64(0),
		registry: r,
		ledger:   l,
		scorer:   scorer.NewScorer(r, l),
		logger:   logger.With(lf.Module("gradebook")),
	}
	r.OnStudentRemoved(b.cascade)
	return b
}

// cascade runs inside RemoveStudent's critical section.
func (b *Book) cascade(studentID string) {
	removed := b.ledger.CascadeRemoveStudent(studentID)
	b.logger.Info("Removed student",
		lf.StudentID(studentID),
		zap.Int("enrollments_removed", removed),
	)
}

// Revision grows on every successful mutation.
func (b *Book) Revision() uint64 {
	return b.revision.Load()
}

func (b *Book) mutated() {
	b.revision.Inc()
}

func (b *Book) AddStudent(id, name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.registry.AddStudent(id, name) {
		b.logger.Debug("Student already registered", lf.StudentID(id))
		return false
	}
	b.mutated()
	return true
}

// RemoveStudent drops the student and then every enrollment it had.
func (b *Book) RemoveStudent(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.registry.RemoveStudent(id) {
		return false
	}
	b.mutated()
	return true
}

func (b *Book) RenameStudent(id, name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.registry.RenameStudent(id, name) {
		return false
	}
	b.mutated()
	return true
}

func (b *Book) FindStudent(id string) (models.Student, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.registry.FindStudent(id)
}

func (b *Book) AddCourse(code, name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.registry.AddCourse(code, name) {
		b.logger.Debug("Course already registered", lf.CourseCode(code))
		return false
	}
	b.mutated()
	return true
}

func (b *Book) FindCourse(code string) (models.Course, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.registry.FindCourse(code)
}

func (b *Book) ListStudentsByName() []models.Student {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.registry.ListStudentsByName()
}

func (b *Book) ListCoursesByName() []models.Course {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.registry.ListCoursesByName()
}

func (b *Book) Enroll(studentID, courseCode string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ledger.Enroll(studentID, courseCode) {
		return false
	}
	b.mutated()
	b.logger.Debug("Enrolled student", lf.StudentID(studentID), lf.CourseCode(courseCode))
	return true
}

func (b *Book) Unenroll(studentID, courseCode string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ledger.Unenroll(studentID, courseCode) {
		return false
	}
	b.mutated()
	b.logger.Debug("Unenrolled student", lf.StudentID(studentID), lf.CourseCode(courseCode))
	return true
}

func (b *Book) AddGrade(studentID, courseCode string, value float64) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ok, err := b.ledger.AddGrade(studentID, courseCode, value)
	if err != nil {
		b.logger.Warn("Rejected grade",
			lf.StudentID(studentID),
			lf.CourseCode(courseCode),
			lf.Grade(value),
			zap.Error(err),
		)
		return false, err
	}
	if ok {
		b.mutated()
	}
	return ok, nil
}

// EnrollAndGrade is atomic: either the enrollment exists afterwards with the
// grade appended, or nothing changed.
func (b *Book) EnrollAndGrade(studentID, courseCode string, value float64) (bool, error) {
	if !models.ValidGrade(value) {
		return false, errors.Wrapf(models.ErrInvalidGrade, "grade %v for %s/%s", value, studentID, courseCode)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, found := b.ledger.GradesOf(studentID, courseCode); !found {
		if !b.ledger.Enroll(studentID, courseCode) {
			return false, nil
		}
	}
	ok, err := b.ledger.AddGrade(studentID, courseCode, value)
	if ok {
		b.mutated()
	}
	return ok, err
}

func (b *Book) GradesOf(studentID, courseCode string) ([]float64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.GradesOf(studentID, courseCode)
}

func (b *Book) EnrollmentsOf(studentID string) []models.Enrollment {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.EnrollmentsOf(studentID)
}

func (b *Book) StudentAverage(studentID string) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scorer.StudentAverage(studentID)
}

func (b *Book) CourseAverage(courseCode string) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scorer.CourseAverage(courseCode)
}

func (b *Book) PassingStudents(threshold float64) []models.Student {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scorer.PassingStudents(threshold)
}

func (b *Book) RankStudentsByAverage(limit int) []scorer.Ranked {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scorer.RankStudentsByAverage(limit)
}

func (b *Book) StudentScores(studentID string, threshold float64) (*scorer.StudentScores, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	student, found := b.registry.FindStudent(studentID)
	if !found {
		return nil, false
	}
	return b.scorer.CalcStudentScores(student, threshold), true
}

func (b *Book) Standings(threshold float64) *scorer.Standings {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scorer.CalcStandings(threshold)
}

type Stats struct {
	Students    int
	Courses     int
	Enrollments int
	Revision    uint64
}

func (b *Book) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{
		Students:    b.registry.StudentCount(),
		Courses:     b.registry.CourseCount(),
		Enrollments: b.ledger.Count(),
		Revision:    b.Revision(),
	}
}
