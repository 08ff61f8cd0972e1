package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile describes how to invoke an external rasterizer.
// Args may contain {width} and {height}; an argument holding a placeholder
// is dropped when the corresponding hint is zero, so use the "--flag={width}" form.
type Profile struct {
	Name        string            `yaml:"name" json:"name"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
}

// ConfigFile represents the structure of rasterizers.yaml
type ConfigFile struct {
	Rasterizers []Profile `yaml:"rasterizers" json:"rasterizers"`
}

// BuiltinProfiles returns invocations for common SVG renderers.
func BuiltinProfiles() map[string]Profile {
	return map[string]Profile{
		"rsvg-convert": {
			Name:        "rsvg-convert",
			Command:     "rsvg-convert",
			Args:        []string{"--format=png", "--width={width}", "--height={height}"},
			Description: "librsvg command line renderer",
		},
		"inkscape": {
			Name:        "inkscape",
			Command:     "inkscape",
			Args:        []string{"--pipe", "--export-type=png", "--export-filename=-", "--export-width={width}", "--export-height={height}"},
			Description: "Inkscape 1.x headless export",
		},
		"resvg": {
			Name:        "resvg",
			Command:     "resvg",
			Args:        []string{"--width={width}", "--height={height}", "-", "-c"},
			Description: "resvg reading stdin and writing PNG to stdout",
		},
	}
}

// LoadProfiles reads a configuration file (YAML or JSON) and merges it over
// the builtin profiles.
func LoadProfiles(path string) (map[string]Profile, error) {
	profiles := BuiltinProfiles()
	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing default file means "builtins only".
			return profiles, nil
		}
		return nil, fmt.Errorf("failed to read rasterizer config: %w", err)
	}

	var cfg ConfigFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse rasterizers.json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse rasterizers.yaml: %w", err)
		}
	}

	for _, p := range cfg.Rasterizers {
		if p.Name == "" || p.Command == "" {
			continue
		}
		profiles[p.Name] = p
	}
	return profiles, nil
}
