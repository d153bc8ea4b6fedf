package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Searches stations by name",
	Args:  cobra.MinimumNArgs(1),
	RunE:  search,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func search(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	stations, err := client.SearchStations(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	if len(stations) == 0 {
		fmt.Println("No stations found")
		return nil
	}

	for _, station := range stations {
		fmt.Printf("%s: %s (%s)\n", station.ID, station.Name, strings.Join(station.Modes, ", "))
	}

	return nil
}
