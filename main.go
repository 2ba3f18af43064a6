// Package main is the dungeonforge command line.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leonelquinteros/gotext"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	locale  string
)

var rootCmd = &cobra.Command{
	Use:   "dungeonforge",
	Short: "Procedural dungeon layout generator",
	Long: `dungeonforge partitions a map into rooms, joins them with doors and
corridors, repairs whatever ends up disconnected and places the player.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initGettext()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every generation step")
	rootCmd.PersistentFlags().StringVar(&locale, "lang", "en_GB", "language for room names and labels")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(viewCmd)
}

func initGettext() {
	gotext.Configure("locale", locale, "default")
}

// newLogger returns a text logger on stderr, at debug level with --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
