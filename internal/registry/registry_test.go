package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigredeye/gradebook/internal/models"
)

func TestAddStudentRejectsDuplicateID(t *testing.T) {
	r := New()

	require.True(t, r.AddStudent("S1", "Ana Silva"))
	assert.False(t, r.AddStudent("S1", "Someone Else"))
	assert.False(t, r.AddStudent("  S1 ", "Trimmed Duplicate"))

	student, found := r.FindStudent("S1")
	require.True(t, found)
	assert.Equal(t, "Ana Silva", student.Name)
	assert.Equal(t, 1, r.StudentCount())
}

func TestStudentIDIsCaseSensitive(t *testing.T) {
	r := New()

	require.True(t, r.AddStudent("abc", "Lower"))
	require.True(t, r.AddStudent("ABC", "Upper"))

	_, found := r.FindStudent("Abc")
	assert.False(t, found)
	assert.Equal(t, 2, r.StudentCount())
}

func TestAddCourseIsCaseInsensitive(t *testing.T) {
	r := New()

	require.True(t, r.AddCourse("MAT101", "Matemática"))
	assert.False(t, r.AddCourse("mat101", "Matemática II"))

	course, found := r.FindCourse("Mat101")
	require.True(t, found)
	assert.Equal(t, models.Course{Code: "MAT101", Name: "Matemática"}, course)
}

func TestRemoveStudentNotifiesHooks(t *testing.T) {
	r := New()
	var removed []string
	r.OnStudentRemoved(func(id string) { removed = append(removed, id) })

	require.True(t, r.AddStudent("S1", "Ana"))
	assert.False(t, r.RemoveStudent("S2"))
	assert.True(t, r.RemoveStudent("S1"))
	assert.False(t, r.RemoveStudent("S1"))

	assert.Equal(t, []string{"S1"}, removed)
	assert.False(t, r.HasStudent("S1"))
}

func TestRenameStudent(t *testing.T) {
	r := New()
	require.True(t, r.AddStudent("S1", "Ana"))

	assert.True(t, r.RenameStudent("S1", " Ana Maria "))
	assert.False(t, r.RenameStudent("S2", "Nobody"))

	student, _ := r.FindStudent("S1")
	assert.Equal(t, "Ana Maria", student.Name)
}

func TestListStudentsByNameIsStable(t *testing.T) {
	r := New()
	r.AddStudent("3", "carla")
	r.AddStudent("1", "Bruno")
	r.AddStudent("2", "ana")
	r.AddStudent("4", "Ana")

	var ids []string
	for _, s := range r.ListStudentsByName() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids)
}

func TestListCoursesByName(t *testing.T) {
	r := New()
	r.AddCourse("POR101", "Português")
	r.AddCourse("FIS101", "física")
	r.AddCourse("MAT101", "Matemática")

	var codes []string
	for _, c := range r.ListCoursesByName() {
		codes = append(codes, c.Code)
	}
	assert.Equal(t, []string{"FIS101", "MAT101", "POR101"}, codes)
}

func TestListOnEmptyRegistry(t *testing.T) {
	r := New()
	assert.Empty(t, r.ListStudentsByName())
	assert.Empty(t, r.ListCoursesByName())
}
