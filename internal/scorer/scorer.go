package scorer

import (
	"golang.org/x/exp/slices"

	"github.com/bigredeye/gradebook/internal/models"
)

type Catalog interface {
	FindStudent(id string) (models.Student, bool)
	FindCourse(code string) (models.Course, bool)
	ListStudentsByName() []models.Student
	ListCoursesByName() []models.Course
}

type Enrollments interface {
	EnrollmentsOf(studentID string) []models.Enrollment
	EnrollmentsIn(courseCode string) []models.Enrollment
	Students() []string
}

type Scorer struct {
	catalog     Catalog
	enrollments Enrollments
}

func NewScorer(catalog Catalog, enrollments Enrollments) *Scorer {
	return &Scorer{catalog, enrollments}
}

// EnrollmentAverage is 0 for an enrollment without grades.
func EnrollmentAverage(e models.Enrollment) float64 {
	return mean(e.Grades)
}

func (s Scorer) EnrollmentAverage(e models.Enrollment) float64 {
	return EnrollmentAverage(e)
}

// gradedAverage skips enrollments nobody graded yet.
func gradedAverage(enrollments []models.Enrollment) float64 {
	sum := 0.0
	count := 0
	for _, e := range enrollments {
		if e.Graded() {
			sum += EnrollmentAverage(e)
			count++
		}
	}
	if count == 0 {
		return 0.0
	}
	return sum / float64(count)
}

func (s Scorer) StudentAverage(studentID string) float64 {
	return gradedAverage(s.enrollments.EnrollmentsOf(studentID))
}

func (s Scorer) CourseAverage(courseCode string) float64 {
	return gradedAverage(s.enrollments.EnrollmentsIn(courseCode))
}

func (s Scorer) PassingStudents(threshold float64) []models.Student {
	res := make([]models.Student, 0)
	for _, student := range s.catalog.ListStudentsByName() {
		if s.StudentAverage(student.ID) >= threshold {
			res = append(res, student)
		}
	}
	return res
}

// RankStudentsByAverage sorts enrolled students by average, best first. Equal
// averages keep the order in which the students first enrolled.
func (s Scorer) RankStudentsByAverage(limit int) []Ranked {
	if limit <= 0 {
		return []Ranked{}
	}

	ids := s.enrollments.Students()
	ranking := make([]Ranked, 0, len(ids))
	for _, id := range ids {
		name := id
		if student, found := s.catalog.FindStudent(id); found {
			name = student.Name
		}
		ranking = append(ranking, Ranked{
			StudentID: id,
			Name:      name,
			Average:   s.StudentAverage(id),
		})
	}

	slices.SortStableFunc(ranking, func(a, b Ranked) bool {
		return a.Average > b.Average
	})

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}

func (s Scorer) CalcStudentScores(student models.Student, threshold float64) *StudentScores {
	enrollments := s.enrollments.EnrollmentsOf(student.ID)
	scores := &StudentScores{
		Student:     student,
		Enrollments: make([]ScoredEnrollment, 0, len(enrollments)),
		Average:     gradedAverage(enrollments),
	}
	scores.Passed = scores.Average >= threshold

	for _, e := range enrollments {
		course, found := s.catalog.FindCourse(e.CourseCode)
		if !found {
			course = models.Course{Code: e.CourseCode}
		}
		scores.Enrollments = append(scores.Enrollments, ScoredEnrollment{
			Course:  course,
			Grades:  e.Grades,
			Average: EnrollmentAverage(e),
		})
	}
	return scores
}

func (s Scorer) CalcStandings(threshold float64) *Standings {
	students := s.catalog.ListStudentsByName()
	courses := s.catalog.ListCoursesByName()

	standings := &Standings{
		Threshold: threshold,
		Students:  make([]*StudentScores, len(students)),
		Courses:   make([]CourseScores, len(courses)),
	}

	for i, student := range students {
		standings.Students[i] = s.CalcStudentScores(student, threshold)
	}

	for i, course := range courses {
		enrollments := s.enrollments.EnrollmentsIn(course.Code)
		graded := 0
		for _, e := range enrollments {
			if e.Graded() {
				graded++
			}
		}
		standings.Courses[i] = CourseScores{
			Course:  course,
			Average: gradedAverage(enrollments),
			Graded:  graded,
		}
	}

	return standings
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
