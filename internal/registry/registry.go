// Package registry holds the canonical students and courses, keyed by their
// identifiers. It knows nothing about enrollments: removing a student only
// notifies subscribers, the caller decides what else has to go.
package registry

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/bigredeye/gradebook/internal/models"
)

type record[T any] struct {
	value T
	seq   uint64
}

type RemovalHook = func(studentID string)

type Registry struct {
	students map[string]*record[models.Student]
	courses  map[string]*record[models.Course]
	seq      uint64

	hooks []RemovalHook
}

func New() *Registry {
	return &Registry{
		students: make(map[string]*record[models.Student]),
		courses:  make(map[string]*record[models.Course]),
	}
}

func (r *Registry) next() uint64 {
	r.seq++
	return r.seq
}

// OnStudentRemoved subscribes fn to successful student removals.
func (r *Registry) OnStudentRemoved(fn RemovalHook) {
	r.hooks = append(r.hooks, fn)
}

func (r *Registry) AddStudent(id, name string) bool {
	student := models.NewStudent(id, name)
	if _, found := r.students[student.ID]; found {
		return false
	}
	r.students[student.ID] = &record[models.Student]{student, r.next()}
	return true
}

func (r *Registry) RemoveStudent(id string) bool {
	id = strings.TrimSpace(id)
	if _, found := r.students[id]; !found {
		return false
	}
	delete(r.students, id)
	for _, hook := range r.hooks {
		hook(id)
	}
	return true
}

func (r *Registry) FindStudent(id string) (models.Student, bool) {
	rec, found := r.students[strings.TrimSpace(id)]
	if !found {
		return models.Student{}, false
	}
	return rec.value, true
}

func (r *Registry) HasStudent(id string) bool {
	_, found := r.students[strings.TrimSpace(id)]
	return found
}

func (r *Registry) RenameStudent(id, name string) bool {
	rec, found := r.students[strings.TrimSpace(id)]
	if !found {
		return false
	}
	rec.value.Name = strings.TrimSpace(name)
	return true
}

func (r *Registry) AddCourse(code, name string) bool {
	course := models.NewCourse(code, name)
	key := course.Key()
	if _, found := r.courses[key]; found {
		return false
	}
	r.courses[key] = &record[models.Course]{course, r.next()}
	return true
}

func (r *Registry) FindCourse(code string) (models.Course, bool) {
	rec, found := r.courses[models.Fold(code)]
	if !found {
		return models.Course{}, false
	}
	return rec.value, true
}

func (r *Registry) HasCourse(code string) bool {
	_, found := r.courses[models.Fold(code)]
	return found
}

func (r *Registry) StudentCount() int {
	return len(r.students)
}

func (r *Registry) CourseCount() int {
	return len(r.courses)
}

// ListStudentsByName orders by case-folded name, then by registration.
func (r *Registry) ListStudentsByName() []models.Student {
	return sortedByName(r.students, func(s models.Student) string { return s.Name })
}

func (r *Registry) ListCoursesByName() []models.Course {
	return sortedByName(r.courses, func(c models.Course) string { return c.Name })
}

func sortedByName[T any](records map[string]*record[T], name func(T) string) []T {
	type keyed struct {
		key string
		rec *record[T]
	}

	items := make([]keyed, 0, len(records))
	for _, rec := range records {
		items = append(items, keyed{models.Fold(name(rec.value)), rec})
	}

	slices.SortFunc(items, func(a, b keyed) bool {
		if a.key != b.key {
			return a.key < b.key
		}
		return a.rec.seq < b.rec.seq
	})

	res := make([]T, len(items))
	for i, item := range items {
		res[i] = item.rec.value
	}
	return res
}
