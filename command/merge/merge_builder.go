// Package merge builds the ffmpeg invocation that concatenates the repaired
// clips and re-encodes them to the canonical output profile.
package merge

import (
	"fmt"
	"strconv"

	"fixmerge/command"
	"fixmerge/models"
)

// MergeBuilder builds the merge+encode command for one MergeTask.
type MergeBuilder struct {
	task    models.MergeTask
	backend models.Backend
	variant models.SyncVariant

	canvasSize   int
	frameRate    int
	pixelFormat  string
	audioCodec   string
	audioQuality string
}

// NewMergeBuilder creates a merge command builder with software encoding
// and the fps_mode sync variant.
func NewMergeBuilder(task models.MergeTask) *MergeBuilder {
	return &MergeBuilder{
		task:         task,
		backend:      models.BackendNone,
		variant:      models.VariantFpsMode,
		canvasSize:   1280,
		frameRate:    25,
		pixelFormat:  "yuv420p",
		audioCodec:   "aac",
		audioQuality: "1.68",
	}
}

// SetBackend selects the hardware backend profile
func (b *MergeBuilder) SetBackend(backend models.Backend) *MergeBuilder {
	b.backend = backend
	return b
}

// SetVariant selects the frame-sync flag form
func (b *MergeBuilder) SetVariant(variant models.SyncVariant) *MergeBuilder {
	b.variant = variant
	return b
}

// Validate reports whether the command can be built.
func (b *MergeBuilder) Validate() error {
	if len(b.task.InputPaths) == 0 {
		return fmt.Errorf("merge needs at least one input")
	}
	if b.task.NeedsManifest() && b.task.ListPath == "" {
		return fmt.Errorf("merge of %d inputs needs a manifest path", len(b.task.InputPaths))
	}
	if _, err := ProfileFor(b.backend); err != nil {
		return err
	}
	if _, err := models.ParseSyncVariant(string(b.variant)); err != nil {
		return err
	}
	return nil
}

// BuildArgs constructs the ffmpeg arguments for the merge pass. An
// unsupported backend contributes no flags; call Validate first.
func (b *MergeBuilder) BuildArgs() []string {
	profile, _ := ProfileFor(b.backend)

	args := make([]string, 0, 64)
	args = append(args, profile.PreInput...)
	args = append(args, b.InputArgs()...)
	args = append(args,
		"-pix_fmt", b.pixelFormat,
		"-c:a", b.audioCodec,
		"-q:a", b.audioQuality,
	)
	args = append(args, profile.VideoCodec...)
	args = append(args,
		"-vf", b.VideoFilter(),
		"-af", "aresample=async=1",
		"-movflags", "+faststart",
		"-map_metadata", "-1",
		"-write_tmcd", "0",
		"-ignore_editlist", "1",
		"-fflags", "+igndts",
	)
	args = append(args, b.syncArgs()...)
	args = append(args, "-y", b.task.OutputPath)
	return args
}

// InputArgs returns the input flags: the concat demuxer reading the
// manifest when there are several inputs, a plain "-i" otherwise.
func (b *MergeBuilder) InputArgs() []string {
	if b.task.NeedsManifest() {
		return []string{
			"-f", "concat",
			"-safe", "0",
			"-i", b.task.ListPath,
		}
	}
	if len(b.task.InputPaths) == 0 {
		return nil
	}
	return []string{"-i", b.task.InputPaths[0]}
}

// VideoFilter returns the filter chain: optional frame rate normalization,
// then scale to fit a square canvas with even dimensions and pad it
// symmetrically.
func (b *MergeBuilder) VideoFilter() string {
	size := strconv.Itoa(b.canvasSize)
	filter := "format=" + b.pixelFormat +
		",scale=w=" + size + ":h=" + size + ":force_original_aspect_ratio=decrease" +
		",scale=trunc(iw/2)*2:trunc(ih/2)*2" +
		",pad=" + size + ":" + size + ":trunc((ow-iw)/2):trunc((oh-ih)/2)"
	if b.variant == models.VariantFpsMode {
		filter = "fps=" + strconv.Itoa(b.frameRate) + "," + filter
	}
	return filter
}

func (b *MergeBuilder) syncArgs() []string {
	if b.variant == models.VariantVsync {
		return []string{"-vsync", "2"}
	}
	return []string{"-fps_mode", "vfr"}
}

// DryRun returns the command line program would be run with, or the
// validation error
func (b *MergeBuilder) DryRun(program string) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	return command.FormatCommandLine(program, b.BuildArgs()), nil
}

// GetTaskType returns the task type identifier
func (b *MergeBuilder) GetTaskType() command.TaskType {
	return command.TaskTypeMerge
}

// GetInputPath returns the manifest path when concatenating, otherwise the
// single input path
func (b *MergeBuilder) GetInputPath() string {
	if b.task.NeedsManifest() {
		return b.task.ListPath
	}
	if len(b.task.InputPaths) == 0 {
		return ""
	}
	return b.task.InputPaths[0]
}

// GetOutputPath returns the final output path
func (b *MergeBuilder) GetOutputPath() string {
	return b.task.OutputPath
}
