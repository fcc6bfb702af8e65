// Package config loads the lowest-priority layer of render option defaults
// from an optional YAML file. Façade options override these values; the
// resulting skinparams outrank the theme, which outranks the hardcoded
// defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults holds the render option defaults a plantgo.yaml file may set.
// Any zero-valued field is left for the next layer (façade option, then
// skinparam, then theme, then hardcoded fallback) to supply.
type Defaults struct {
	FontFamily       string            `yaml:"fontFamily,omitempty"`
	FontSize         float64           `yaml:"fontSize,omitempty"`
	BaseMargin       float64           `yaml:"baseMargin,omitempty"`
	ParticipantWidth float64           `yaml:"participantWidth,omitempty"`
	Skinparams       map[string]string `yaml:"skinparams,omitempty"`
}

// Load reads and parses a plantgo.yaml-shaped file. A missing file is not
// an error: it returns a zero Defaults, letting every field fall through
// to the next layer in the resolution chain.
func Load(path string) (Defaults, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Defaults{}, nil
	}
	if err != nil {
		return Defaults{}, fmt.Errorf("reading config file: %w", err)
	}
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Defaults{}, fmt.Errorf("parsing YAML: %w", err)
	}
	return d, nil
}
