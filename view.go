package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dungeonforge/pkg/game/generator"
	"dungeonforge/pkg/game/renderer"
	viewer "dungeonforge/pkg/game/renderer/ebiten"
)

var viewConfig = generator.DefaultConfig()

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Generate a dungeon and walk through it in a window",
	Args:  cobra.NoArgs,
	RunE:  runView,
}

func init() {
	viewConfig.BindFlags(viewCmd.Flags())
}

func runView(cmd *cobra.Command, args []string) error {
	cfg := viewConfig
	cfg.Logger = newLogger()

	v := viewer.New(cfg.Logger)
	renderer.SetRenderer(v)
	defer renderer.SetRenderer(nil)
	cfg.Player = v

	l, err := generator.DefaultGenerator.Generate(cfg)
	if err != nil {
		return err
	}
	v.Attach(l, cfg.CorridorWidth)

	if err := v.Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
