package ledger

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/bigredeye/gradebook/internal/models"
)

// Directory resolves the references an enrollment is allowed to hold.
type Directory interface {
	FindStudent(id string) (models.Student, bool)
	FindCourse(code string) (models.Course, bool)
}

type Ledger struct {
	dir Directory

	enrollments map[string][]*models.Enrollment
	// student ids in order of their first live enrollment
	order []string
}

func New(dir Directory) *Ledger {
	return &Ledger{
		dir:         dir,
		enrollments: make(map[string][]*models.Enrollment),
	}
}

func (l *Ledger) find(studentID, courseCode string) (int, *models.Enrollment) {
	key := models.Fold(courseCode)
	for i, e := range l.enrollments[studentID] {
		if models.Fold(e.CourseCode) == key {
			return i, e
		}
	}
	return -1, nil
}

func (l *Ledger) Enroll(studentID, courseCode string) bool {
	student, found := l.dir.FindStudent(studentID)
	if !found {
		return false
	}
	course, found := l.dir.FindCourse(courseCode)
	if !found {
		return false
	}
	if _, e := l.find(student.ID, course.Code); e != nil {
		return false
	}

	list, found := l.enrollments[student.ID]
	if !found {
		l.order = append(l.order, student.ID)
	}
	l.enrollments[student.ID] = append(list, &models.Enrollment{
		StudentID:  student.ID,
		CourseCode: course.Code,
		Grades:     make([]float64, 0),
	})
	return true
}

func (l *Ledger) Unenroll(studentID, courseCode string) bool {
	studentID = strings.TrimSpace(studentID)
	i, e := l.find(studentID, courseCode)
	if e == nil {
		return false
	}

	list := slices.Delete(l.enrollments[studentID], i, i+1)
	if len(list) == 0 {
		l.forget(studentID)
	} else {
		l.enrollments[studentID] = list
	}
	return true
}

// AddGrade reports false without error when there is no such enrollment. An
// out of range value is an error and leaves the grades untouched.
func (l *Ledger) AddGrade(studentID, courseCode string, value float64) (bool, error) {
	_, e := l.find(strings.TrimSpace(studentID), courseCode)
	if e == nil {
		return false, nil
	}
	if !models.ValidGrade(value) {
		return false, errors.Wrapf(models.ErrInvalidGrade, "grade %v for %s/%s", value, e.StudentID, e.CourseCode)
	}
	e.Grades = append(e.Grades, value)
	return true, nil
}

func (l *Ledger) GradesOf(studentID, courseCode string) ([]float64, bool) {
	_, e := l.find(strings.TrimSpace(studentID), courseCode)
	if e == nil {
		return nil, false
	}
	return e.Clone().Grades, true
}

// EnrollmentsOf never returns nil.
func (l *Ledger) EnrollmentsOf(studentID string) []models.Enrollment {
	list := l.enrollments[strings.TrimSpace(studentID)]
	res := make([]models.Enrollment, 0, len(list))
	for _, e := range list {
		res = append(res, e.Clone())
	}
	return res
}

func (l *Ledger) EnrollmentsIn(courseCode string) []models.Enrollment {
	key := models.Fold(courseCode)
	res := make([]models.Enrollment, 0)
	for _, id := range l.order {
		for _, e := range l.enrollments[id] {
			if models.Fold(e.CourseCode) == key {
				res = append(res, e.Clone())
			}
		}
	}
	return res
}

func (l *Ledger) CascadeRemoveStudent(studentID string) int {
	studentID = strings.TrimSpace(studentID)
	count := len(l.enrollments[studentID])
	if count > 0 {
		l.forget(studentID)
	}
	return count
}

// Students lists every student with at least one enrollment.
func (l *Ledger) Students() []string {
	return slices.Clone(l.order)
}

func (l *Ledger) Count() int {
	count := 0
	for _, list := range l.enrollments {
		count += len(list)
	}
	return count
}

func (l *Ledger) forget(studentID string) {
	delete(l.enrollments, studentID)
	if i := slices.Index(l.order, studentID); i >= 0 {
		l.order = slices.Delete(l.order, i, i+1)
	}
}
