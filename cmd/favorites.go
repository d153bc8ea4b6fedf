package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"stationly.dev/tfl"
	"stationly.dev/tfl/storage"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manages favorite stations",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists favorite stations",
	RunE:  favoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <station>",
	Short: "Adds a station to favorites, resolving names via search",
	Args:  cobra.MinimumNArgs(1),
	RunE:  favoritesAdd,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <station_id>",
	Short: "Removes a station from favorites",
	Args:  cobra.ExactArgs(1),
	RunE:  favoritesRemove,
}

var favoritesMainCmd = &cobra.Command{
	Use:   "main <station_id>",
	Short: "Makes a favorite the main station",
	Args:  cobra.ExactArgs(1),
	RunE:  favoritesMain,
}

var favoritesExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Exports favorites to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  favoritesExport,
}

var favoritesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Imports favorites from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  favoritesImport,
}

func init() {
	favoritesCmd.AddCommand(
		favoritesListCmd,
		favoritesAddCmd,
		favoritesRemoveCmd,
		favoritesMainCmd,
		favoritesExportCmd,
		favoritesImportCmd,
	)
	rootCmd.AddCommand(favoritesCmd)
}

type favoriteRecord struct {
	StationID string `csv:"station_id"`
	Name      string `csv:"name"`
	Modes     string `csv:"modes"`
	IsMain    bool   `csv:"is_main"`
	AddedAt   string `csv:"added_at"`
}

func favoritesList(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	favorites, err := store.Favorites()
	if err != nil {
		return err
	}

	if len(favorites) == 0 {
		fmt.Println("No favorites yet")
		return nil
	}

	for _, fav := range favorites {
		marker := " "
		if fav.IsMain {
			marker = "*"
		}
		fmt.Printf("%s %s: %s\n", marker, fav.ID, fav.Name)
	}

	return nil
}

func favoritesAdd(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	input := strings.Join(args, " ")
	resolution := client.ResolveStationID(cmd.Context(), input)

	if resolution.Ambiguous() {
		fmt.Printf("Multiple stations found for %q; add one by ID:\n", input)
		for _, station := range resolution.Alternatives {
			fmt.Printf("  %s: %s (%s)\n",
				station.ID, station.Name, strings.Join(station.Modes, ", "))
		}
		return nil
	}
	if !resolution.Resolved() {
		return resolution.Err
	}

	station := *resolution.Station

	// A canonical ID short-circuits resolution with a stub record.
	// Fill in the real name and modes for display; the favorite is
	// valid either way.
	if station.Name == station.ID {
		if detail, err := client.StationByID(cmd.Context(), station.ID); err == nil {
			station = *detail
		}
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	fav, err := store.AddFavorite(station)
	if err != nil {
		return err
	}

	fmt.Printf("Added %s (%s)\n", fav.Name, fav.ID)
	if fav.IsMain {
		fmt.Println("This is now your main station")
	}

	return nil
}

func favoritesRemove(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	return store.RemoveFavorite(args[0])
}

func favoritesMain(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	return store.SetMainStation(args[0])
}

func favoritesExport(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	favorites, err := store.Favorites()
	if err != nil {
		return err
	}

	records := make([]favoriteRecord, 0, len(favorites))
	for _, fav := range favorites {
		records = append(records, favoriteRecord{
			StationID: fav.ID,
			Name:      fav.Name,
			Modes:     strings.Join(fav.Modes, " "),
			IsMain:    fav.IsMain,
			AddedAt:   fav.AddedAt.Format(time.RFC3339),
		})
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(&records, f)
}

func favoritesImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	records := []favoriteRecord{}
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return err
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	mainID := ""
	for _, record := range records {
		station := tfl.Station{
			ID:   record.StationID,
			Name: record.Name,
		}
		if record.Modes != "" {
			station.Modes = strings.Fields(record.Modes)
		}

		_, err := store.AddFavorite(station)
		if err == storage.ErrAlreadyFavorite {
			continue
		}
		if err != nil {
			return err
		}
		if record.IsMain {
			mainID = record.StationID
		}
	}

	if mainID != "" {
		if err := store.SetMainStation(mainID); err != nil {
			return err
		}
	}

	fmt.Printf("Imported %d favorites\n", len(records))
	return nil
}
