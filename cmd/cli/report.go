package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bigredeye/gradebook/internal/config"
	"github.com/bigredeye/gradebook/internal/report"
)

func makeReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the school report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeReport()
		},
	}
	cmd.Flags().StringP("output", "o", config.DefaultReportOutput, "Report file")
	cmd.Flags().String("format", config.ReportFormatText, "Report format: text, pdf or bundle")

	return cmd
}

func writeReport() error {
	book, _ := loadBook()

	standings := book.Standings(cfg.Grading.PassThreshold)
	if err := report.WriteFile(cfg.Report.Output, cfg.Report.Format, standings, log); err != nil {
		return err
	}

	fmt.Printf("Report written to %s\n", cfg.Report.Output)
	return nil
}
