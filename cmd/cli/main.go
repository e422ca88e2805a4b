package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/config"
	"github.com/bigredeye/gradebook/internal/gradebook"
	"github.com/bigredeye/gradebook/internal/loader"
	"github.com/bigredeye/gradebook/pkg/conf"
	zlog "github.com/bigredeye/gradebook/pkg/log"
)

var (
	log *zap.Logger
	cfg *config.Config
)

var (
	configPath string
	verbose    bool

	rootCmd = &cobra.Command{
		Use:           "gradebook",
		Short:         "School gradebook: enrollments, grades and reports",
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			zlog.Sync()
		},
	}

	remoteCmd = &cobra.Command{
		Use:   "remote",
		Short: "Talk to a running gradebook server",
	}
)

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"students":  "data.students",
	"courses":   "data.courses",
	"fixture":   "data.fixture",
	"threshold": "grading.passthreshold",
	"limit":     "grading.ranklimit",
	"output":    "report.output",
	"format":    "report.format",
	"log-file":  "log.file",
}

func setup(cmd *cobra.Command) error {
	options := make([]conf.Option, 0, len(flagKeys))
	for flag, key := range flagKeys {
		options = append(options, conf.Flag(key, cmd.Flags().Lookup(flag)))
	}

	var err error
	cfg, err = config.ParseConfig(configPath, options...)
	if err != nil {
		return err
	}

	initLogging()
	return nil
}

func initLogging() {
	options := []zlog.Option{zlog.Console()}
	if !verbose {
		options = append(options, zlog.Level(zap.InfoLevel))
	}
	// the file sink picks up the level chosen above
	options = append(options, zlog.WithFile(cfg.Log.File))
	log = zlog.InitDev(options...)
}

// loadBook reads every configured data source; unreadable ones are reported
// and skipped.
func loadBook() (*gradebook.Book, *loader.Summary) {
	book, summary := loader.Load(cfg, log)
	for _, err := range summary.Failures {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return book, summary
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func initCommands() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (yaml, json or toml)")
	flags.String("students", "", "Students csv file (id,name)")
	flags.String("courses", "", "Courses csv file (code,name)")
	flags.String("fixture", "", "Yaml fixture with students, courses and enrollments")
	flags.Float64("threshold", config.DefaultPassThreshold, "Minimum average to pass")
	flags.String("log-file", "", "Also write json logs to this file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(makeImportCommand())
	rootCmd.AddCommand(makeReportCommand())
	rootCmd.AddCommand(makeMenuCommand())
	rootCmd.AddCommand(makeRankCommand())

	remoteCmd.AddCommand(makeRemoteRankingCommand())
	rootCmd.AddCommand(remoteCmd)
}

func init() {
	initCommands()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Command failed: %+v\n", err)
		os.Exit(1)
	}
}
