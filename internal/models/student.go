package models

import (
	"strings"

	"golang.org/x/text/cases"
)

type Student struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func NewStudent(id, name string) Student {
	return Student{
		ID:   strings.TrimSpace(id),
		Name: strings.TrimSpace(name),
	}
}

func (s Student) String() string {
	return s.ID + " - " + s.Name
}

// Fold returns the caseless form of s. Course codes and names are compared
// through it. A Caser keeps state, so every call gets its own.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
