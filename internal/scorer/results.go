package scorer

import (
	"github.com/bigredeye/gradebook/internal/models"
)

type ScoredEnrollment struct {
	Course  models.Course `json:"course"`
	Grades  []float64     `json:"grades"`
	Average float64       `json:"average"`
}

func (e ScoredEnrollment) Graded() bool {
	return len(e.Grades) > 0
}

type StudentScores struct {
	Student     models.Student     `json:"student"`
	Enrollments []ScoredEnrollment `json:"enrollments"`
	Average     float64            `json:"average"`
	Passed      bool               `json:"passed"`
}

type CourseScores struct {
	Course  models.Course `json:"course"`
	Average float64       `json:"average"`
	Graded  int           `json:"graded"`
}

type Ranked struct {
	StudentID string  `json:"student_id"`
	Name      string  `json:"name"`
	Average   float64 `json:"average"`
}

type Standings struct {
	Threshold float64          `json:"threshold"`
	Students  []*StudentScores `json:"students"`
	Courses   []CourseScores   `json:"courses"`
}

// Passing keeps the name order of Students.
func (s *Standings) Passing() []*StudentScores {
	res := make([]*StudentScores, 0)
	for _, student := range s.Students {
		if student.Passed {
			res = append(res, student)
		}
	}
	return res
}
