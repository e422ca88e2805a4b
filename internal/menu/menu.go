// Package menu is the interactive front-end of the gradebook: a numbered
// list of commands read line by line from any reader.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/gradebook"
	lf "github.com/bigredeye/gradebook/internal/logfield"
	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/report"
	"github.com/bigredeye/gradebook/internal/scorer"
)

type Options struct {
	PassThreshold float64
	RankLimit     int
	ReportPath    string
	ReportFormat  string
}

type Menu struct {
	book    *gradebook.Book
	in      *bufio.Scanner
	out     io.Writer
	options Options
	logger  *zap.Logger
}

type item struct {
	code  int
	title string
	run   func(m *Menu) error
}

// errClosed means the input ended in the middle of a command.
var errClosed = errors.New("input closed")

var items = []item{
	{1, "Matricular estudante", (*Menu).enroll},
	{2, "Cancelar matrícula", (*Menu).unenroll},
	{3, "Lançar nota", (*Menu).addGrade},
	{4, "Consultar notas", (*Menu).queryGrades},
	{5, "Listar matrículas do estudante", (*Menu).listEnrollments},
	{6, "Média do estudante", (*Menu).studentAverage},
	{7, "Média da disciplina", (*Menu).courseAverage},
	{8, "Ranking de estudantes", (*Menu).ranking},
	{9, "Estudantes aprovados", (*Menu).passing},
	{10, "Gerar relatório", (*Menu).writeReport},
	{11, "Remover estudante", (*Menu).removeStudent},
	{12, "Renomear estudante", (*Menu).renameStudent},
}

func New(book *gradebook.Book, in io.Reader, out io.Writer, options Options, logger *zap.Logger) *Menu {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Menu{
		book:    book,
		in:      bufio.NewScanner(in),
		out:     out,
		options: options,
		logger:  logger.With(lf.Module("menu")),
	}
}

// Run serves commands until the user picks 0, the input ends or ctx is done.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu()
		line, ok := m.readLine()
		if !ok {
			return m.in.Err()
		}

		code, err := strconv.Atoi(line)
		if err != nil {
			m.printf("Opção inválida: %q\n", line)
			continue
		}
		if code == 0 {
			m.printf("Até logo!\n")
			return nil
		}

		cmd := lookup(code)
		if cmd == nil {
			m.printf("Opção inválida: %d\n", code)
			continue
		}

		m.logger.Debug("Running command", zap.Int("code", code))
		if err := cmd.run(m); err != nil {
			if errors.Is(err, errClosed) {
				return m.in.Err()
			}
			return err
		}
	}
}

func lookup(code int) *item {
	for i := range items {
		if items[i].code == code {
			return &items[i]
		}
	}
	return nil
}

func (m *Menu) printMenu() {
	m.printf("\n== Gerenciamento escolar ==\n")
	for _, it := range items {
		m.printf("%d) %s\n", it.code, it.title)
	}
	m.printf("0) Sair\nOpção: ")
}

func (m *Menu) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) ask(prompt string) (string, error) {
	m.printf("%s: ", prompt)
	line, ok := m.readLine()
	if !ok {
		return "", errClosed
	}
	return line, nil
}

// ParseNumber accepts both "7.5" and "7,5".
func ParseNumber(s string) (float64, error) {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	return strconv.ParseFloat(s, 64)
}

func (m *Menu) askPair() (string, string, error) {
	studentID, err := m.ask("Matrícula do estudante")
	if err != nil {
		return "", "", err
	}
	courseCode, err := m.ask("Código da disciplina")
	if err != nil {
		return "", "", err
	}
	return studentID, courseCode, nil
}

func (m *Menu) enroll() error {
	studentID, courseCode, err := m.askPair()
	if err != nil {
		return err
	}
	if m.book.Enroll(studentID, courseCode) {
		m.printf("Matrícula realizada.\n")
	} else {
		m.printf("Não foi possível matricular: estudante ou disciplina inexistente, ou matrícula já existe.\n")
	}
	return nil
}

func (m *Menu) unenroll() error {
	studentID, courseCode, err := m.askPair()
	if err != nil {
		return err
	}
	if m.book.Unenroll(studentID, courseCode) {
		m.printf("Matrícula cancelada.\n")
	} else {
		m.printf("Matrícula não encontrada.\n")
	}
	return nil
}

func (m *Menu) addGrade() error {
	studentID, courseCode, err := m.askPair()
	if err != nil {
		return err
	}
	raw, err := m.ask("Nota")
	if err != nil {
		return err
	}
	value, err := ParseNumber(raw)
	if err != nil {
		m.printf("Número inválido: %q\n", raw)
		return nil
	}

	ok, err := m.book.AddGrade(studentID, courseCode, value)
	switch {
	case errors.Is(err, models.ErrInvalidGrade):
		m.printf("Nota inválida: deve estar entre %.0f e %.0f.\n", models.MinGrade, models.MaxGrade)
	case err != nil:
		return err
	case !ok:
		m.printf("Matrícula não encontrada.\n")
	default:
		m.printf("Nota lançada.\n")
	}
	return nil
}

func (m *Menu) queryGrades() error {
	studentID, courseCode, err := m.askPair()
	if err != nil {
		return err
	}
	grades, found := m.book.GradesOf(studentID, courseCode)
	if !found {
		m.printf("Matrícula não encontrada.\n")
		return nil
	}
	m.printf("Notas: %s | Média: %.2f\n", report.FormatGrades(grades), scorer.EnrollmentAverage(models.Enrollment{Grades: grades}))
	return nil
}

func (m *Menu) listEnrollments() error {
	studentID, err := m.ask("Matrícula do estudante")
	if err != nil {
		return err
	}
	scores, found := m.book.StudentScores(studentID, m.options.PassThreshold)
	if !found {
		m.printf("Estudante não encontrado.\n")
		return nil
	}
	m.printf("%s\n", scores.Student)
	if len(scores.Enrollments) == 0 {
		m.printf("  Nenhuma matrícula.\n")
	}
	for _, e := range scores.Enrollments {
		m.printf("  %s\n", report.FormatEnrollment(e))
	}
	return nil
}

func (m *Menu) studentAverage() error {
	studentID, err := m.ask("Matrícula do estudante")
	if err != nil {
		return err
	}
	student, found := m.book.FindStudent(studentID)
	if !found {
		m.printf("Estudante não encontrado.\n")
		return nil
	}
	m.printf("%s -> Média: %.2f\n", student, m.book.StudentAverage(student.ID))
	return nil
}

func (m *Menu) courseAverage() error {
	courseCode, err := m.ask("Código da disciplina")
	if err != nil {
		return err
	}
	course, found := m.book.FindCourse(courseCode)
	if !found {
		m.printf("Disciplina não encontrada.\n")
		return nil
	}
	m.printf("%s -> Média: %.2f\n", course, m.book.CourseAverage(course.Code))
	return nil
}

func (m *Menu) ranking() error {
	raw, err := m.ask(fmt.Sprintf("Quantidade [%d]", m.options.RankLimit))
	if err != nil {
		return err
	}
	limit := m.options.RankLimit
	if raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			m.printf("Número inválido: %q\n", raw)
			return nil
		}
	}

	ranked := m.book.RankStudentsByAverage(limit)
	if len(ranked) == 0 {
		m.printf("Nenhum estudante no ranking.\n")
	}
	for i, r := range ranked {
		m.printf("%d. %s - %s (média %.2f)\n", i+1, r.StudentID, r.Name, r.Average)
	}
	return nil
}

func (m *Menu) passing() error {
	raw, err := m.ask(fmt.Sprintf("Média mínima [%.2f]", m.options.PassThreshold))
	if err != nil {
		return err
	}
	threshold := m.options.PassThreshold
	if raw != "" {
		if threshold, err = ParseNumber(raw); err != nil {
			m.printf("Número inválido: %q\n", raw)
			return nil
		}
	}

	students := m.book.PassingStudents(threshold)
	if len(students) == 0 {
		m.printf("Nenhum estudante aprovado.\n")
	}
	for _, s := range students {
		m.printf("%s\n", s)
	}
	return nil
}

func (m *Menu) writeReport() error {
	path, err := m.ask(fmt.Sprintf("Arquivo [%s]", m.options.ReportPath))
	if err != nil {
		return err
	}
	if path == "" {
		path = m.options.ReportPath
	}

	standings := m.book.Standings(m.options.PassThreshold)
	if err := report.WriteFile(path, m.options.ReportFormat, standings, m.logger); err != nil {
		m.printf("Falha ao gerar relatório: %v\n", err)
		return nil
	}
	m.printf("Relatório gravado em %s.\n", path)
	return nil
}

// removeStudent also cancels every enrollment of the student.
func (m *Menu) removeStudent() error {
	studentID, err := m.ask("Matrícula do estudante")
	if err != nil {
		return err
	}
	if m.book.RemoveStudent(studentID) {
		m.printf("Estudante removido.\n")
	} else {
		m.printf("Estudante não encontrado.\n")
	}
	return nil
}

func (m *Menu) renameStudent() error {
	studentID, err := m.ask("Matrícula do estudante")
	if err != nil {
		return err
	}
	name, err := m.ask("Novo nome")
	if err != nil {
		return err
	}
	if name == "" {
		m.printf("Nome vazio.\n")
		return nil
	}
	if m.book.RenameStudent(studentID, name) {
		m.printf("Estudante renomeado.\n")
	} else {
		m.printf("Estudante não encontrado.\n")
	}
	return nil
}
