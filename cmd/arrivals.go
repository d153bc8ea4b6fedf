package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stationly.dev/tfl"
)

var arrivalsCmd = &cobra.Command{
	Use:   "arrivals <station>",
	Short: "Lists live arrivals for a station",
	Long:  "Lists live arrivals for a station, given its canonical ID or name",
	Args:  cobra.ArbitraryArgs,
	RunE:  arrivals,
}

var (
	byPlatform bool
	lineOnly   string
)

func init() {
	arrivalsCmd.Flags().BoolVarP(&byPlatform, "by-platform", "p", false, "Group arrivals by platform instead of line")
	arrivalsCmd.Flags().StringVarP(&lineOnly, "line", "l", "", "Fetch arrivals for a line ID instead of a station")
	rootCmd.AddCommand(arrivalsCmd)
}

func arrivals(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	var list []tfl.Arrival
	if lineOnly != "" {
		list, err = client.LineArrivals(cmd.Context(), lineOnly)
	} else {
		if len(args) == 0 {
			return fmt.Errorf("a station ID or name is required")
		}
		list, err = client.StationArrivals(cmd.Context(), strings.Join(args, " "))
	}

	var disambiguation *tfl.DisambiguationError
	if errors.As(err, &disambiguation) {
		fmt.Println(disambiguation.Error())
		for _, station := range disambiguation.Alternatives {
			fmt.Printf("  %s: %s (%s)\n",
				station.ID, station.Name, strings.Join(station.Modes, ", "))
		}
		return nil
	}
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No imminent arrivals")
		return nil
	}

	groups := tfl.GroupArrivalsByLine(list)
	if byPlatform {
		groups = tfl.GroupArrivalsByPlatform(list)
	}

	for _, key := range groups.Keys() {
		fmt.Println(key)
		for _, arrival := range groups.Get(key) {
			fmt.Printf("  %-8s %s (%s)\n",
				tfl.FormatTimeToStation(arrival.TimeToStation),
				arrival.DestinationName,
				arrival.PlatformName,
			)
		}
	}

	return nil
}
