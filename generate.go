package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dungeonforge/pkg/game/devtools"
	"dungeonforge/pkg/game/generator"
	"dungeonforge/pkg/game/renderer"
	"dungeonforge/pkg/game/renderer/tui"
)

var (
	generateConfig = generator.DefaultConfig()
	dumpPath       string
	noColor        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a dungeon and print its map",
	Long:  `Generate a dungeon, print it as a coloured character map and optionally write a debug dump.`,
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	generateConfig.BindFlags(generateCmd.Flags())
	generateCmd.Flags().StringVar(&dumpPath, "dump", "", "write a debug map dump to this file")
	generateCmd.Flags().BoolVar(&noColor, "no-color", false, "print without colour escapes")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := generateConfig
	cfg.Logger = newLogger()

	out := tui.New(cmd.OutOrStdout())
	out.Init()
	if noColor {
		out.Plain = true
	}
	renderer.SetRenderer(out)
	defer renderer.SetRenderer(nil)

	l, err := generator.DefaultGenerator.Generate(cfg)
	if err != nil {
		return err
	}
	if err := l.Validate(); err != nil {
		cfg.Logger.Warn("layout has invariant violations", "err", err)
	}

	spawn := l.Spawn
	if err := out.RenderFrame(&spawn); err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seed: %d  rooms: %d  corridors: %d  doors: %d\n",
		l.Seed, len(l.Rooms), len(l.Corridors), l.Doors.Len())

	if dumpPath != "" {
		path, err := devtools.DumpLayoutToFile(l, dumpPath)
		if err != nil {
			return fmt.Errorf("write map dump: %w", err)
		}
		cfg.Logger.Info("map dump written", "path", path)
	}
	return nil
}
