package models

const (
	MinGrade = 0.0
	MaxGrade = 10.0
)

type Enrollment struct {
	StudentID  string    `json:"student_id"`
	CourseCode string    `json:"course_code"`
	Grades     []float64 `json:"grades"`
}

func (e Enrollment) Graded() bool {
	return len(e.Grades) > 0
}

// Clone detaches the grade slice so callers can't mutate ledger state.
func (e Enrollment) Clone() Enrollment {
	grades := make([]float64, len(e.Grades))
	copy(grades, e.Grades)
	e.Grades = grades
	return e
}

func ValidGrade(value float64) bool {
	return value >= MinGrade && value <= MaxGrade
}
