package fixture

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bigredeye/gradebook/internal/gradebook"
	"github.com/bigredeye/gradebook/internal/models"
)

const schoolYaml = `
students:
  - id: "2025001"
    name: Ana Silva
  - id: "2025002"
    name: Bruno Costa

courses:
  - code: MAT101
    name: Matemática
  - code: POR101
    name: Português

enrollments:
  - student: "2025001"
    course:  MAT101
    grades:  [8.5, 7.0]
  - student: "2025001"
    course:  POR101
    grades:  [9.0]
  - student: "2025002"
    course:  mat101
    grades:  [6.0, 11]
  - student: "2025009"
    course:  MAT101
`

func TestFixtureParsing(t *testing.T) {
	fixture, err := Parse([]byte(schoolYaml))
	if err != nil {
		t.Fatal("Failed to parse fixture:", err)
	}

	expected := &Fixture{
		Students: []models.Student{
			{ID: "2025001", Name: "Ana Silva"},
			{ID: "2025002", Name: "Bruno Costa"},
		},
		Courses: []models.Course{
			{Code: "MAT101", Name: "Matemática"},
			{Code: "POR101", Name: "Português"},
		},
		Enrollments: []Enrollment{
			{Student: "2025001", Course: "MAT101", Grades: []float64{8.5, 7.0}},
			{Student: "2025001", Course: "POR101", Grades: []float64{9.0}},
			{Student: "2025002", Course: "mat101", Grades: []float64{6.0, 11}},
			{Student: "2025009", Course: "MAT101"},
		},
	}

	if diff := cmp.Diff(expected, fixture); diff != "" {
		t.Fatalf("Unexpected fixture (-want +got):\n%s", diff)
	}
}

func TestFixtureRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("students:\n  - id: x\n    nmae: typo\n"))
	if err == nil {
		t.Fatal("Expected an error for an unknown field")
	}
}

func TestFixtureApply(t *testing.T) {
	fixture, err := Parse([]byte(schoolYaml))
	if err != nil {
		t.Fatal("Failed to parse fixture:", err)
	}

	book := gradebook.New(nil)
	report := fixture.Apply(book, nil)

	expected := Report{Students: 2, Courses: 2, Enrollments: 3, Grades: 4, Rejected: 1}
	if diff := cmp.Diff(expected, report); diff != "" {
		t.Fatalf("Unexpected apply report (-want +got):\n%s", diff)
	}

	if avg := book.StudentAverage("2025001"); avg != 8.375 {
		t.Fatalf("Invalid average: %v, expected: %v", avg, 8.375)
	}
	if avg := book.CourseAverage("MAT101"); avg != 6.875 {
		t.Fatalf("Invalid average: %v, expected: %v", avg, 6.875)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir() + "/missing.yml")
	if !models.IsIOError(err) {
		t.Fatalf("Expected io error, got %v", err)
	}
}
