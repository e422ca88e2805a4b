package importer

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigredeye/gradebook/internal/gradebook"
	"github.com/bigredeye/gradebook/internal/models"
)

const studentsCSV = `id,name
2025001,Ana Silva
2025002, Bruno Costa
2025001,Ana Duplicada

2025003,Carla Souza,extra
,Sem Id
2025004,"Souza, Diego"
`

const coursesCSV = `codigo,nome
MAT101,Matemática
POR101,Português
mat101,Matemática Repetida
`

func TestImportStudents(t *testing.T) {
	book := gradebook.New(nil)
	res, err := New(book, nil).ImportStudents(strings.NewReader(studentsCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Loaded)
	require.Len(t, res.Duplicates, 1)
	assert.Equal(t, 4, res.Duplicates[0].Line)
	assert.Len(t, res.Skipped, 2)

	student, found := book.FindStudent("2025002")
	require.True(t, found)
	assert.Equal(t, "Bruno Costa", student.Name)

	student, found = book.FindStudent("2025001")
	require.True(t, found)
	assert.Equal(t, "Ana Silva", student.Name)

	student, found = book.FindStudent("2025004")
	require.True(t, found)
	assert.Equal(t, "Souza, Diego", student.Name)
}

func TestImportCoursesDuplicateIsCaseInsensitive(t *testing.T) {
	book := gradebook.New(nil)
	res, err := New(book, nil).ImportCourses(strings.NewReader(coursesCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Loaded)
	require.Len(t, res.Duplicates, 1)
	assert.Equal(t, []string{"mat101", "Matemática Repetida"}, res.Duplicates[0].Fields)
	assert.Equal(t, "courses: 2 loaded, 1 duplicates, 0 skipped", res.String())
}

func TestImportHeaderOnly(t *testing.T) {
	res, err := New(gradebook.New(nil), nil).ImportStudents(strings.NewReader("id,name\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Loaded)
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "students.csv")
	require.NoError(t, os.WriteFile(path, []byte(studentsCSV), 0o644))

	book := gradebook.New(nil)
	res, err := New(book, nil).ImportFile(KindStudents, path)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Loaded)
	assert.Equal(t, 3, book.Stats().Students)
}

func TestImportMissingFileIsIOFailure(t *testing.T) {
	book := gradebook.New(nil)
	_, err := New(book, nil).ImportFile(KindCourses, filepath.Join(t.TempDir(), "missing.csv"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrIO))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, models.IsIOError(err))
	assert.Equal(t, 0, book.Stats().Courses)
}

func TestImportReadFailureKeepsLoadedRows(t *testing.T) {
	book := gradebook.New(nil)
	input := iotest.TimeoutReader(strings.NewReader("id,name\nS1,Ana\n"))
	res, err := New(book, nil).ImportStudents(input)

	// TimeoutReader fails the second read; the first one holds the whole input.
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrIO))
	assert.Equal(t, 1, res.Loaded)
	assert.Equal(t, 1, book.Stats().Students)
}

func TestImportUnknownKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o644))

	_, err := New(gradebook.New(nil), nil).ImportFile(Kind("grades"), path)
	require.Error(t, err)
	assert.False(t, models.IsIOError(err))
}

func TestImportMalformedHeaderKeepsRows(t *testing.T) {
	book := gradebook.New(nil)
	res, err := New(book, nil).ImportStudents(strings.NewReader("id,\"na\"me\n1,Ana\n2,Bruno\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Loaded)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 1, res.Skipped[0].Line)
	assert.Empty(t, res.Duplicates)

	_, found := book.FindStudent("1")
	assert.True(t, found)
	_, found = book.FindStudent("2")
	assert.True(t, found)
}
