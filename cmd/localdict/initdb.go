package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/honyakun/localdict/internal/database"
)

func newInitDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create the dictionary store if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if _, err := os.Stat(cfg.Database.Path); err == nil {
				color.Yellow("store already exists: %s", cfg.Database.Path)
				return nil
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("stat store %s: %w", cfg.Database.Path, err)
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer func() { _ = db.Close() }()

			if err := database.Init(cmd.Context(), db); err != nil {
				return fmt.Errorf("initialize store: %w", err)
			}

			color.Green("store created at %s", cfg.Database.Path)
			return nil
		},
	}
}
