package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all fixmerge configuration options as read from defaults,
// the config file and the command line.
type Config struct {
	// Pipeline settings
	Hardware  string   `yaml:"hardware"`   // none, cuda, vaapi, videotoolbox, qsv
	SourceDir string   `yaml:"source_dir"` // resolved against the working directory
	TargetDir string   `yaml:"target_dir"` // resolved against the working directory
	Inputs    []string `yaml:"inputs"`     // file names inside SourceDir, in concat order

	// External tool
	FFmpegPath string `yaml:"ffmpeg_path"` // bare name is looked up in PATH
	Variant    string `yaml:"variant"`     // "fps_mode" (current ffmpeg) or "vsync" (legacy)

	// Behavioral flags
	StartupDelay time.Duration `yaml:"startup_delay"` // pause before any work, e.g. "1s"
	FailFast     bool          `yaml:"fail_fast"`     // stop at the first failed stage
	LogLevel     string        `yaml:"log_level"`     // zerolog level name

	// Command line only
	ListCodecs  bool   `yaml:"-"` // list every codec and exit
	CodecFilter string `yaml:"-"` // describe one encoder and exit
	DryRun      bool   `yaml:"-"` // log commands without running them
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Hardware:  "",
		SourceDir: "./src",
		TargetDir: "./target",
		Inputs: []string{
			"ex_1_0.webm",
			"ex_1_1.webm",
		},

		FFmpegPath: "ffmpeg",
		Variant:    "fps_mode",

		StartupDelay: time.Second,
		FailFast:     false, // Log failed stages and keep going
		LogLevel:     "info",
	}
}

// YAML renders the file-backed part of the config.
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
