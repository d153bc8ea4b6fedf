package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stationly.dev/tfl"
	"stationly.dev/tfl/fetch"
	"stationly.dev/tfl/storage"
)

var rootCmd = &cobra.Command{
	Use:          "tfl",
	Short:        "Live London transit data",
	Long:         "Station search, live arrivals and line status for tube, DLR and Elizabeth line",
	SilenceUsage: true,
}

var (
	appID     string
	appKey    string
	baseURL   string
	dbPath    string
	cacheFile string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&appID, "app-id", "", os.Getenv("TFL_APP_ID"), "TfL API application ID")
	rootCmd.PersistentFlags().StringVarP(&appKey, "app-key", "", os.Getenv("TFL_APP_KEY"), "TfL API application key")
	rootCmd.PersistentFlags().StringVarP(&baseURL, "base-url", "", tfl.DefaultBaseURL, "TfL API base URL")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "", "stationly.db", "Path to the favorites database")
	rootCmd.PersistentFlags().StringVarP(&cacheFile, "cache-file", "", "", "Cache responses in this file between runs")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newClient() (*tfl.Client, error) {
	client := tfl.NewClient(appID, appKey)
	client.BaseURL = baseURL

	if cacheFile != "" {
		fs, err := fetch.NewFilesystem(cacheFile)
		if err != nil {
			return nil, fmt.Errorf("creating response cache: %w", err)
		}
		client.Fetcher = fs
	}

	return client, nil
}

func openStorage() (storage.Storage, error) {
	return storage.NewSQLiteStorage(storage.SQLiteConfig{Path: dbPath})
}
