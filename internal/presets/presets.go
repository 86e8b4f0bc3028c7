// Package presets holds the built-in container type catalog and
// loads operator-supplied overrides from a YAML file.
package presets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cargostow/loadengine/internal/model"
)

// Catalog maps a container type tag to its dimensions.
type Catalog map[string]model.Dimensions

// Default returns the built-in container types (cm).
func Default() Catalog {
	return Catalog{
		"TRUCK": {Width: 245, Length: 1360, Height: 270},
		"40HC":  {Width: 235, Length: 1203, Height: 269},
		"40DC":  {Width: 235, Length: 1203, Height: 239},
		"20DC":  {Width: 235, Length: 589, Height: 239},
	}
}

// Lookup returns the dimensions registered for tag, and whether the
// tag was found.
func (c Catalog) Lookup(tag string) (model.Dimensions, bool) {
	d, ok := c[tag]
	return d, ok
}

// fileSchema mirrors the on-disk YAML shape: a flat map of tag to
// width/length/height, overlaid on top of Default().
type fileSchema map[string]struct {
	Width  float64 `yaml:"width"`
	Length float64 `yaml:"length"`
	Height float64 `yaml:"height"`
}

// LoadFile overlays container definitions from a YAML file onto the
// built-in catalog; tags present in the file override the built-in
// entry of the same name, and new tags are added.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset file: %w", err)
	}

	var parsed fileSchema
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse preset file: %w", err)
	}

	catalog := Default()
	for tag, dims := range parsed {
		catalog[tag] = model.Dimensions{Width: dims.Width, Length: dims.Length, Height: dims.Height}
	}
	return catalog, nil
}
