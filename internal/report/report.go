// Package report turns standings into the school report.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bigredeye/gradebook/internal/scorer"
)

const Title = "RELATÓRIO ESCOLAR"

type lineKind int

const (
	lineText lineKind = iota
	lineTitle
	lineSection
	lineBlank
)

type line struct {
	kind lineKind
	text string
}

func FormatGrades(grades []float64) string {
	parts := make([]string, len(grades))
	for i, g := range grades {
		parts[i] = fmt.Sprintf("%.2f", g)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func FormatEnrollment(e scorer.ScoredEnrollment) string {
	return fmt.Sprintf("%s | Notas: %s | Média: %.2f", e.Course.String(), FormatGrades(e.Grades), e.Average)
}

func build(standings *scorer.Standings) []line {
	lines := []line{
		{lineTitle, Title},
		{lineText, strings.Repeat("=", len([]rune(Title)))},
		{lineBlank, ""},
		{lineSection, "Estudantes (ordenados):"},
	}

	for _, s := range standings.Students {
		lines = append(lines, line{lineText, s.Student.String()})
		for _, e := range s.Enrollments {
			lines = append(lines, line{lineText, "  " + FormatEnrollment(e)})
		}
		lines = append(lines,
			line{lineText, fmt.Sprintf("  Média geral: %.2f", s.Average)},
			line{lineBlank, ""},
		)
	}

	lines = append(lines, line{lineSection, "Médias por disciplina:"})
	for _, c := range standings.Courses {
		lines = append(lines, line{lineText, fmt.Sprintf("%s -> Média: %.2f", c.Course.String(), c.Average)})
	}
	lines = append(lines, line{lineBlank, ""})

	lines = append(lines, line{lineSection, fmt.Sprintf("Estudantes aprovados (média >= %.2f):", standings.Threshold)})
	for _, s := range standings.Passing() {
		lines = append(lines, line{lineText, fmt.Sprintf("%s (média %.2f)", s.Student.String(), s.Average)})
	}

	return lines
}

// Render writes the plain text report.
func Render(w io.Writer, standings *scorer.Standings) error {
	bw := bufio.NewWriter(w)
	for _, l := range build(standings) {
		if _, err := bw.WriteString(l.text + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func RenderString(standings *scorer.Standings) string {
	sb := &strings.Builder{}
	_ = Render(sb, standings)
	return sb.String()
}
