package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bigredeye/gradebook/internal/config"
	"github.com/bigredeye/gradebook/internal/scorer"
	client "github.com/bigredeye/gradebook/pkg/client/gradebook"
)

func makeRankCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the best students by average",
		RunE: func(cmd *cobra.Command, args []string) error {
			book, _ := loadBook()
			printRanking(book.RankStudentsByAverage(cfg.Grading.RankLimit))
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", config.DefaultRankLimit, "How many students to print")

	return cmd
}

func makeRemoteRankingCommand() *cobra.Command {
	var endpoint string
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Fetch the ranking from a gradebook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return remoteRanking(endpoint)
		},
	}
	cmd.Flags().StringVar(&endpoint, "endpoint", "http://localhost:8080", "Server address")
	cmd.Flags().IntP("limit", "n", config.DefaultRankLimit, "How many students to fetch")

	return cmd
}

func remoteRanking(endpoint string) error {
	c, err := client.NewClient(endpoint)
	if err != nil {
		return err
	}

	ranking, err := c.LoadRanking(cfg.Grading.RankLimit)
	if err != nil {
		return err
	}
	printRanking(ranking)
	return nil
}

func printRanking(ranking []scorer.Ranked) {
	if len(ranking) == 0 {
		fmt.Println("No ranked students")
		return
	}
	for i, r := range ranking {
		fmt.Printf("%d.\t%s\t%s\t%.2f\n", i+1, r.StudentID, r.Name, r.Average)
	}
}
