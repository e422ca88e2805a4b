package api

import "github.com/bigredeye/gradebook/internal/scorer"

type StudentResponse struct {
	Status

	Scores *scorer.StudentScores `json:"scores,omitempty"`
}

type CourseAverageResponse struct {
	Status

	Code    string  `json:"code,omitempty"`
	Name    string  `json:"name,omitempty"`
	Average float64 `json:"average"`
}
