package models

import "strings"

type Course struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

func NewCourse(code, name string) Course {
	return Course{
		Code: strings.TrimSpace(code),
		Name: strings.TrimSpace(name),
	}
}

// Key identifies the course regardless of the code's case.
func (c Course) Key() string {
	return Fold(c.Code)
}

func (c Course) String() string {
	return c.Code + " - " + c.Name
}
