package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bigredeye/gradebook/internal/importer"
)

func makeImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load the data files and print what was loaded",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport()
		},
	}
}

func printResult(res *importer.Result) {
	if res == nil {
		return
	}
	fmt.Println(res.String())
	for _, row := range res.Duplicates {
		fmt.Printf("  line %d: duplicate %v\n", row.Line, row.Fields)
	}
	for _, row := range res.Skipped {
		fmt.Printf("  line %d: skipped (%s)\n", row.Line, row.Reason)
	}
}

func runImport() error {
	book, summary := loadBook()

	printResult(summary.Students)
	printResult(summary.Courses)
	if f := summary.Fixture; f != nil {
		fmt.Printf("fixture: %d students, %d courses, %d enrollments, %d grades, %d rejected\n",
			f.Students, f.Courses, f.Enrollments, f.Grades, f.Rejected)
	}

	stats := book.Stats()
	fmt.Printf("total: %d students, %d courses, %d enrollments\n", stats.Students, stats.Courses, stats.Enrollments)

	if n := len(summary.Failures); n > 0 {
		return fmt.Errorf("%d data source(s) could not be read", n)
	}
	return nil
}
