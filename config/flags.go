package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds the command-line options. Only flags that were set
// explicitly override the config file.
type Flags struct {
	ConfigPath string
	Hardware   string
	ListCodecs bool
	Codec      string
	LogLevel   string
	FailFast   bool
	DryRun     bool

	fs *pflag.FlagSet
}

// BindFlags registers the fixmerge flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}

	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file (default: search ./fixmerge.yaml, ~/.fixmerge/config.yaml, /etc/fixmerge/config.yaml)")
	fs.StringVar(&f.Hardware, "hardware", "", "Hardware backend: none, cuda, vaapi, videotoolbox, qsv (default: software)")
	fs.BoolVar(&f.ListCodecs, "codecs", false, "List all codecs supported by ffmpeg and exit")
	fs.StringVar(&f.Codec, "codec", "", "Show the options of one encoder and exit")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default: from config)")
	fs.BoolVar(&f.FailFast, "fail-fast", false, "Stop at the first failed stage")
	fs.BoolVar(&f.DryRun, "dry-run", false, "Log the ffmpeg commands without running them")

	return f
}

// Validate rejects flag values that cannot select a mode.
func (f *Flags) Validate() error {
	if f == nil || f.ListCodecs {
		return nil
	}
	if f.changed("codec") && strings.TrimSpace(f.Codec) == "" {
		return fmt.Errorf("--codec needs an encoder name (use --codecs to list all)")
	}
	return nil
}

func (f *Flags) changed(name string) bool {
	if f.fs == nil {
		return false
	}
	return f.fs.Changed(name)
}

// MergeFromFlags overrides config values with explicitly set flags.
//
// --codecs selects the all-codecs listing and wins over --codec.
func (c *Config) MergeFromFlags(f *Flags) {
	if f == nil {
		return
	}

	if f.changed("hardware") {
		c.Hardware = f.Hardware
	}
	if f.changed("log-level") && f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	if f.changed("fail-fast") {
		c.FailFast = f.FailFast
	}
	if f.changed("dry-run") {
		c.DryRun = f.DryRun
	}

	switch {
	case f.ListCodecs:
		c.ListCodecs = true
		c.CodecFilter = ""
	case f.changed("codec"):
		c.ListCodecs = true
		c.CodecFilter = f.Codec
	}
}
