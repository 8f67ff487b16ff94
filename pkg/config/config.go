// Package config provides run configuration for seqops. Defaults can be
// overridden by a seqops.yaml file and again by CLI flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default paths and values, matching the conventions of the sequencing
// facility this tool grew up in.
const (
	DefaultSampleList = "samples"
	DefaultSearchRoot = "/data/sequencing"
	DefaultOutputDir  = "fastq"
	DefaultSeparator  = "_"
)

// FileName is the config file looked up in the working directory when no
// --config flag is given.
const FileName = "seqops.yaml"

// Config holds defaults for all seqops commands.
type Config struct {
	// Locate settings
	SampleList string `yaml:"sample_list"` // path to the sample identifier list
	SearchRoot string `yaml:"search_root"` // directory tree searched for reads
	OutputDir  string `yaml:"output_dir"`  // destination for copied reads
	Separator  string `yaml:"separator"`   // text expected after the sample id

	// Provision settings
	Provision Provision `yaml:"provision"`
}

// Provision holds settings for the runtime installer.
type Provision struct {
	RuntimeVersion string `yaml:"runtime_version"` // pinned Singularity release
	GoVersion      string `yaml:"go_version"`      // toolchain downloaded when absent
	GoSHA256       string `yaml:"go_sha256"`       // optional tarball checksum
	ProfilePath    string `yaml:"profile_path"`    // shell profile receiving PATH edits
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SampleList: DefaultSampleList,
		SearchRoot: DefaultSearchRoot,
		OutputDir:  DefaultOutputDir,
		Separator:  DefaultSeparator,
		Provision: Provision{
			RuntimeVersion: "3.8.7",
			GoVersion:      "1.17.13",
		},
	}
}

// Load reads a YAML config file and merges it over the defaults. Fields
// absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault loads the given config path if set, otherwise seqops.yaml
// from the working directory if present, otherwise the built-in defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	if _, err := os.Stat(FileName); err == nil {
		return Load(FileName)
	}

	return Default(), nil
}
