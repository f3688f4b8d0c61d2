// Package models provides the core data structures shared by the
// configuration layer, the command builders and the pipeline.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedBackend is returned by ParseBackend for names outside the
// known backend set.
var ErrUnsupportedBackend = errors.New("unsupported hardware backend")

// Backend represents the hardware acceleration path used by the merge stage.
type Backend string

const (
	BackendNone         Backend = "none"         // Software encoding
	BackendCUDA         Backend = "cuda"         // NVIDIA NVDEC/NVENC
	BackendVAAPI        Backend = "vaapi"        // Intel/AMD on Linux
	BackendVideoToolbox Backend = "videotoolbox" // macOS
	BackendQSV          Backend = "qsv"          // Intel Quick Sync
)

// Backends returns every supported backend in a stable order.
func Backends() []Backend {
	return []Backend{BackendNone, BackendCUDA, BackendVAAPI, BackendVideoToolbox, BackendQSV}
}

// ParseBackend resolves a user-supplied backend name. An empty name means
// no hardware acceleration.
func ParseBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return BackendNone, nil
	}
	for _, b := range Backends() {
		if string(b) == name {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnsupportedBackend, name, strings.Join(BackendNames(), ", "))
}

// BackendNames returns the names accepted by ParseBackend.
func BackendNames() []string {
	backends := Backends()
	names := make([]string, len(backends))
	for i, b := range backends {
		names[i] = string(b)
	}
	return names
}

// Marker returns the token embedded in repaired file names. The token
// parses back to the same backend.
func (b Backend) Marker() string {
	if b == "" {
		return string(BackendNone)
	}
	return string(b)
}

// IsHardware reports whether b selects an acceleration path.
func (b Backend) IsHardware() bool {
	return b != "" && b != BackendNone
}

func (b Backend) String() string {
	return b.Marker()
}
