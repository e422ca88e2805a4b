package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigredeye/gradebook/internal/config"
	"github.com/bigredeye/gradebook/internal/models"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Data.Students = write(t, dir, "students.csv", "id,name\nS1,Ana\nS2,Bruno\n")
	cfg.Data.Courses = write(t, dir, "courses.csv", "code,name\nC1,Matemática\n")
	cfg.Data.Fixture = write(t, dir, "fixture.yaml", `
courses:
  - code: C1
    name: Again
  - code: C2
    name: Física
enrollments:
  - student: S1
    course: C1
    grades: [8, 9]
  - student: S2
    course: C2
    grades: [5]
`)

	book, summary := Load(cfg, nil)
	require.Empty(t, summary.Failures)

	assert.Equal(t, 2, summary.Students.Loaded)
	assert.Equal(t, 1, summary.Courses.Loaded)
	require.NotNil(t, summary.Fixture)
	assert.Equal(t, 1, summary.Fixture.Courses)
	assert.Equal(t, 2, summary.Fixture.Enrollments)

	assert.InDelta(t, 8.5, book.StudentAverage("S1"), 1e-9)
	assert.InDelta(t, 5.0, book.CourseAverage("C2"), 1e-9)
}

func TestLoadKeepsGoingAfterFailure(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Data.Students = filepath.Join(dir, "missing.csv")
	cfg.Data.Courses = write(t, dir, "courses.csv", "code,name\nC1,Matemática\n")

	book, summary := Load(cfg, nil)
	require.Len(t, summary.Failures, 1)
	assert.True(t, errors.Is(summary.Failures[0], models.ErrIO))
	assert.Nil(t, summary.Fixture)
	assert.Equal(t, 1, book.Stats().Courses)
}
