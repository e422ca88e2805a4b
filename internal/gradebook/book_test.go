package gradebook

import (
	"fmt"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/models"
)

func newBook(t *testing.T) *Book {
	t.Helper()
	b := New(zap.NewNop())
	require.True(t, b.AddStudent("S1", "A"))
	require.True(t, b.AddStudent("S2", "B"))
	require.True(t, b.AddCourse("C1", "Course One"))
	require.True(t, b.AddCourse("C2", "Course Two"))
	require.True(t, b.Enroll("S1", "C1"))
	require.True(t, b.Enroll("S1", "C2"))
	require.True(t, b.Enroll("S2", "C1"))
	for _, g := range []struct {
		student, course string
		value           float64
	}{
		{"S1", "C1", 8.5}, {"S1", "C1", 7.0}, {"S1", "C2", 9.0}, {"S2", "C1", 6.0},
	} {
		ok, err := b.AddGrade(g.student, g.course, g.value)
		require.NoError(t, err)
		require.True(t, ok)
	}
	return b
}

func TestScenario(t *testing.T) {
	b := newBook(t)

	assert.InDelta(t, 8.375, b.StudentAverage("S1"), 1e-9)
	assert.InDelta(t, 6.875, b.CourseAverage("C1"), 1e-9)
	assert.Equal(t, []models.Student{{ID: "S1", Name: "A"}}, b.PassingStudents(7.0))

	top := b.RankStudentsByAverage(1)
	require.Len(t, top, 1)
	assert.Equal(t, "S1", top[0].StudentID)
}

func TestRemoveStudentCascades(t *testing.T) {
	b := newBook(t)

	require.True(t, b.RemoveStudent("S1"))
	assert.False(t, b.RemoveStudent("S1"))

	assert.Empty(t, b.EnrollmentsOf("S1"))
	assert.Len(t, b.EnrollmentsOf("S2"), 1)
	assert.InDelta(t, 6.0, b.CourseAverage("C1"), 1e-9)
	assert.Equal(t, 0.0, b.CourseAverage("C2"))

	// re-registering starts from a clean slate
	require.True(t, b.AddStudent("S1", "A again"))
	assert.Empty(t, b.EnrollmentsOf("S1"))
	assert.True(t, b.Enroll("S1", "C1"))
}

func TestInvalidGradeDoesNotMutate(t *testing.T) {
	b := newBook(t)
	rev := b.Revision()

	ok, err := b.AddGrade("S2", "C1", 11)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, models.ErrInvalidGrade))

	grades, found := b.GradesOf("S2", "C1")
	require.True(t, found)
	assert.Equal(t, []float64{6.0}, grades)
	assert.Equal(t, rev, b.Revision())
}

func TestRevisionTracksMutations(t *testing.T) {
	b := New(nil)
	assert.Equal(t, uint64(0), b.Revision())

	require.True(t, b.AddStudent("S1", "A"))
	assert.False(t, b.AddStudent("S1", "A"))
	assert.Equal(t, uint64(1), b.Revision())

	assert.False(t, b.Enroll("S1", "C1"))
	assert.Equal(t, uint64(1), b.Revision())
}

func TestEnrollAndGrade(t *testing.T) {
	b := newBook(t)

	ok, err := b.EnrollAndGrade("S2", "C2", 5)
	require.NoError(t, err)
	assert.True(t, ok)
	grades, found := b.GradesOf("S2", "c2")
	require.True(t, found)
	assert.Equal(t, []float64{5}, grades)

	ok, err = b.EnrollAndGrade("S2", "C2", 7)
	require.NoError(t, err)
	assert.True(t, ok)
	grades, _ = b.GradesOf("S2", "C2")
	assert.Equal(t, []float64{5, 7}, grades)

	ok, err = b.EnrollAndGrade("S2", "C9", 5)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = b.EnrollAndGrade("S1", "C1", -1)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, models.ErrInvalidGrade))
}

func TestConcurrentEnrollKeepsOnePerPair(t *testing.T) {
	b := New(nil)
	require.True(t, b.AddCourse("C1", "One"))
	for i := 0; i < 10; i++ {
		require.True(t, b.AddStudent(fmt.Sprintf("S%d", i), "Student"))
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if b.Enroll(fmt.Sprintf("S%d", i), "c1") {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
				_, _ = b.AddGrade(fmt.Sprintf("S%d", i), "C1", 5)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 10, b.Stats().Enrollments)
	assert.InDelta(t, 5.0, b.CourseAverage("C1"), 1e-9)
}

func TestStudentScores(t *testing.T) {
	b := newBook(t)

	scores, found := b.StudentScores("S1", 8.0)
	require.True(t, found)
	assert.True(t, scores.Passed)
	assert.Len(t, scores.Enrollments, 2)

	_, found = b.StudentScores("S9", 8.0)
	assert.False(t, found)
}
