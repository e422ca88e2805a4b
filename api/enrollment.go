package api

type EnrollRequest struct {
	StudentID  string `json:"student_id" form:"student_id" binding:"required"`
	CourseCode string `json:"course_code" form:"course_code" binding:"required"`
}

type EnrollResponse struct {
	Status
}

// Grade is a pointer so that a missing grade is told apart from a zero.
// With Enroll set the student is enrolled first when needed.
type GradeRequest struct {
	StudentID  string   `json:"student_id" form:"student_id" binding:"required"`
	CourseCode string   `json:"course_code" form:"course_code" binding:"required"`
	Grade      *float64 `json:"grade" form:"grade" binding:"required"`
	Enroll     bool     `json:"enroll,omitempty" form:"enroll"`
}

type GradeResponse struct {
	Status

	Grades []float64 `json:"grades,omitempty"`
}

type RenameRequest struct {
	Name string `json:"name" form:"name" binding:"required"`
}

type StudentStatusResponse struct {
	Status
}
