package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "treemap",
	Short: "Build interactive tree inventory maps for school campuses",
	Long: `treemap turns a school's tree survey package (inventory spreadsheet,
campus boundary shapefile, and tree photos) into a single interactive
HTML map.

Tunables like zoom level and marker size are read from environment
variables; a .env file next to the working directory is loaded
automatically.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env just means everything comes from the environment.
		_ = godotenv.Load()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
