package models

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects between the transcode pipeline and codec listing.
type Mode string

const (
	ModeTranscode  Mode = "transcode"
	ModeListCodecs Mode = "list-codecs"
)

// SyncVariant selects the frame-sync flag form understood by the installed
// ffmpeg. Both forms keep variable frame rate.
type SyncVariant string

const (
	// VariantVsync emits "-vsync 2" and leaves the frame rate untouched.
	VariantVsync SyncVariant = "vsync"
	// VariantFpsMode emits "-fps_mode vfr" and normalizes to 25fps.
	VariantFpsMode SyncVariant = "fps_mode"
)

// ParseSyncVariant resolves a variant name, ignoring case and surrounding
// spaces; empty means VariantFpsMode.
func ParseSyncVariant(name string) (SyncVariant, error) {
	switch SyncVariant(strings.ToLower(strings.TrimSpace(name))) {
	case "", VariantFpsMode:
		return VariantFpsMode, nil
	case VariantVsync:
		return VariantVsync, nil
	}
	return "", fmt.Errorf("unknown variant %q (valid: %s, %s)", name, VariantVsync, VariantFpsMode)
}

// RunConfig is the resolved, immutable configuration of a single run.
type RunConfig struct {
	Mode Mode
	// CodecFilter names one encoder to describe in list-codecs mode.
	// Empty lists every codec.
	CodecFilter string

	Backend   Backend
	SourceDir string
	TargetDir string
	Inputs    []string

	FFmpegPath   string
	Variant      SyncVariant
	StartupDelay time.Duration
	FailFast     bool
	DryRun       bool
}
