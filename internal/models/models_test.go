package models

import (
	"io/fs"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, Fold("mat101"), Fold(" MAT101 "))
	assert.Equal(t, Fold("matemática"), Fold("MATEMÁTICA"))
	assert.Equal(t, NewCourse("mat101", "x").Key(), NewCourse("MAT101", "y").Key())
}

func TestValidGrade(t *testing.T) {
	for _, v := range []float64{0, 5.5, 10} {
		assert.True(t, ValidGrade(v), v)
	}
	for _, v := range []float64{-0.01, 10.01, math.NaN(), math.Inf(1)} {
		assert.False(t, ValidGrade(v), v)
	}
}

func TestIOError(t *testing.T) {
	err := errors.Wrap(NewIOError("open", "students.csv", fs.ErrNotExist), "Failed to import")

	assert.True(t, errors.Is(err, ErrIO))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsIOError(err))
	assert.False(t, IsIOError(ErrIO))
	assert.Equal(t, "Failed to import: open students.csv: file does not exist", err.Error())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "2025001 - Ana Silva", NewStudent(" 2025001 ", " Ana Silva ").String())
	assert.Equal(t, "MAT101 - Matemática", NewCourse("MAT101", "Matemática").String())
}
