package cmd

import (
	"fmt"
	"os"

	"github.com/julienpequegnot/rssgen/internal/config"
	"github.com/julienpequegnot/rssgen/internal/database"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize rssgen configuration and history database",
	Long:  `Creates the ~/.rssgen directory (or $RSSGEN_HOME) with config.yaml and the SQLite history database.`,
	RunE:  runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config.yaml with defaults")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := config.Dir()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	cfg, err := config.Load()
	if err != nil || initForce {
		cfg = config.Default()
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s/config.yaml\n", dir)

	db, err := database.New(config.DBPath())
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	db.Close()
	fmt.Fprintf(cmd.OutOrStdout(), "Created database at %s\n", config.DBPath())

	fmt.Fprintln(cmd.OutOrStdout(), "\nrssgen initialized! Next steps:")
	fmt.Fprintln(cmd.OutOrStdout(), "  rssgen --url <site-url>        Find the feed of one site")
	fmt.Fprintln(cmd.OutOrStdout(), "  rssgen --input sites.txt       Resolve a list of sites")
	fmt.Fprintln(cmd.OutOrStdout(), "  rssgen history                 Show recorded resolutions")

	return nil
}
