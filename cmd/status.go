package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stationly.dev/tfl"
)

var statusCmd = &cobra.Command{
	Use:   "status [line...]",
	Short: "Shows line status, optionally for specific line IDs",
	RunE:  status,
}

var disruptedOnly bool

func init() {
	statusCmd.Flags().BoolVarP(&disruptedOnly, "disrupted", "d", false, "Only show lines with disruptions")
	rootCmd.AddCommand(statusCmd)
}

func status(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	var statuses []tfl.LineStatus
	if len(args) > 0 {
		statuses, err = client.LineStatusFor(cmd.Context(), args)
	} else {
		statuses, err = client.AllLineStatus(cmd.Context())
	}
	if err != nil {
		return err
	}

	if disruptedOnly {
		statuses = tfl.DisruptedLines(statuses)
		if len(statuses) == 0 {
			fmt.Println("Good service on all lines")
			return nil
		}
	}

	for _, s := range tfl.SortBySeverity(statuses) {
		fmt.Printf("%-20s %s\n", s.LineName, s.StatusSeverityDescription)
		if s.Reason != "" {
			fmt.Printf("  %s\n", s.Reason)
		}
	}

	return nil
}
