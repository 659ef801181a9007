package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/honyakun/localdict/internal/database"
	"github.com/honyakun/localdict/internal/dictionary"
)

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [csv-file]",
		Short: "Import dictionary entries from a CSV file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			csvPath := cfg.Import.CSVPath
			if len(args) > 0 {
				csvPath = args[0]
			}

			if _, err := os.Stat(cfg.Database.Path); os.IsNotExist(err) {
				return fmt.Errorf("store not found at %s, run initdb first", cfg.Database.Path)
			}

			file, err := os.Open(csvPath)
			if err != nil {
				return fmt.Errorf("open CSV file: %w", err)
			}
			defer func() { _ = file.Close() }()

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer func() { _ = db.Close() }()

			importer := dictionary.NewImporter(db)
			count, err := importer.ImportCSV(cmd.Context(), file)
			if err != nil {
				return fmt.Errorf("import CSV: %w", err)
			}

			color.Green("imported %d entries from %s", count, csvPath)
			return nil
		},
	}
}
