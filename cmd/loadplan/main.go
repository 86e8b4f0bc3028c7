// Command loadplan is a CLI front end over the placement engine: it
// reads a project file's container and cargo manifest, runs Pack, and
// prints a load report.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cargostow/loadengine/internal/engine"
	"github.com/cargostow/loadengine/internal/presets"
	"github.com/cargostow/loadengine/internal/project"
)

type CLI struct {
	Pack    PackCmd    `cmd:"" help:"Pack a project file's cargo manifest into its container and print a report."`
	Presets PresetsCmd `cmd:"" help:"List the built-in container preset catalog."`
}

type PackCmd struct {
	ProjectFile  string `arg:"" help:"Path to a project JSON file (container + cargoList)."`
	PresetsFile  string `help:"Optional YAML file overlaying the built-in container preset catalog." name:"presets-file"`
	UseValley    bool   `help:"Use the valley-nesting cylinder strategy instead of the default strip packer."`
	PalletsAsBox bool   `help:"Route pallets through the box wall-builder instead of the floor optimizer."`
	UseGenetic   bool   `help:"Order box instances with the genetic optimizer instead of the greedy height sort."`
	GeneticSeed  int64  `help:"RNG seed for the genetic box optimizer." default:"1"`
}

func (c *PackCmd) Run() error {
	file, err := project.Load(c.ProjectFile)
	if err != nil {
		return fmt.Errorf("load project file: %w", err)
	}

	container := file.Container
	if container.TypeTag != "" && container.TypeTag != "Custom" {
		catalog := presets.Default()
		if c.PresetsFile != "" {
			catalog, err = presets.LoadFile(c.PresetsFile)
			if err != nil {
				return fmt.Errorf("load presets file: %w", err)
			}
		}
		if dims, ok := catalog.Lookup(container.TypeTag); ok {
			container.Dimensions = dims
		}
	}

	opts := engine.Options{PalletsUseBoxPacker: c.PalletsAsBox, GeneticSeed: c.GeneticSeed}
	if c.UseValley {
		opts.CylinderStrategy = engine.CylinderValley
	}
	if c.UseGenetic {
		opts.BoxStrategy = engine.BoxGenetic
	}

	result, err := engine.Pack(container, file.CargoList, opts)
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}

	fmt.Print(renderReport(container, file.CargoList, result))
	return nil
}

type PresetsCmd struct {
	File string `help:"Optional YAML file overlaying the built-in container preset catalog." name:"file"`
}

func (c *PresetsCmd) Run() error {
	catalog := presets.Default()
	if c.File != "" {
		var err error
		catalog, err = presets.LoadFile(c.File)
		if err != nil {
			return fmt.Errorf("load presets file: %w", err)
		}
	}

	for tag, d := range catalog {
		fmt.Printf("%-8s %7.1f x %7.1f x %7.1f cm\n", tag, d.Width, d.Length, d.Height)
	}
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("loadplan"),
		kong.Description("Container load-planning CLI."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
