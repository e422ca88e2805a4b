package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bigredeye/gradebook/internal/config"
	"github.com/bigredeye/gradebook/internal/menu"
)

func makeMenuCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu()
		},
	}
	cmd.Flags().StringP("output", "o", config.DefaultReportOutput, "Report file")
	cmd.Flags().String("format", config.ReportFormatText, "Report format: text, pdf or bundle")
	cmd.Flags().Int("limit", config.DefaultRankLimit, "Default ranking size")

	return cmd
}

func runMenu() error {
	book, _ := loadBook()

	ctx, cancel := signalContext()
	defer cancel()

	m := menu.New(book, os.Stdin, os.Stdout, menu.Options{
		PassThreshold: cfg.Grading.PassThreshold,
		RankLimit:     cfg.Grading.RankLimit,
		ReportPath:    cfg.Report.Output,
		ReportFormat:  cfg.Report.Format,
	}, log)
	return m.Run(ctx)
}
