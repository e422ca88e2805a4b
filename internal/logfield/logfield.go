package lf

import "go.uber.org/zap"

const (
	FieldModule     = "module"
	FieldStudentID  = "student_id"
	FieldCourseCode = "course_code"
	FieldGrade      = "grade"
	FieldPath       = "path"
	FieldRequestID  = "request_id"
	FieldRevision   = "revision"
)

func Module(module string) zap.Field {
	return zap.String(FieldModule, module)
}

func StudentID(id string) zap.Field {
	return zap.String(FieldStudentID, id)
}

func CourseCode(code string) zap.Field {
	return zap.String(FieldCourseCode, code)
}

func Grade(value float64) zap.Field {
	return zap.Float64(FieldGrade, value)
}

func Path(path string) zap.Field {
	return zap.String(FieldPath, path)
}

func RequestID(id string) zap.Field {
	return zap.String(FieldRequestID, id)
}

func Revision(rev uint64) zap.Field {
	return zap.Uint64(FieldRevision, rev)
}
