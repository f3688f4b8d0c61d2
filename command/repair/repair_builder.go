// Package repair builds the ffmpeg invocation that normalizes one source
// clip's pixel format and timestamps without re-encoding its streams.
package repair

import (
	"fixmerge/command"
	"fixmerge/models"
)

// RepairBuilder builds the repair command for one RepairTask.
type RepairBuilder struct {
	task        models.RepairTask
	pixelFormat string
}

// NewRepairBuilder creates a repair command builder for task.
func NewRepairBuilder(task models.RepairTask) *RepairBuilder {
	return &RepairBuilder{
		task:        task,
		pixelFormat: "yuv420p",
	}
}

// BuildArgs constructs the ffmpeg arguments for the repair pass:
// pixel format yuv420p, stream copy, regenerated PTS, overwrite.
func (b *RepairBuilder) BuildArgs() []string {
	return []string{
		"-i", b.task.SourcePath,
		"-pix_fmt", b.pixelFormat,
		"-c", "copy",
		"-fflags", "+genpts",
		"-y", b.task.TargetPath,
	}
}

// DryRun returns the command line program would be run with
func (b *RepairBuilder) DryRun(program string) (string, error) {
	return command.FormatCommandLine(program, b.BuildArgs()), nil
}

// GetTaskType returns the task type identifier
func (b *RepairBuilder) GetTaskType() command.TaskType {
	return command.TaskTypeRepair
}

// GetInputPath returns the source clip path
func (b *RepairBuilder) GetInputPath() string {
	return b.task.SourcePath
}

// GetOutputPath returns the repaired clip path
func (b *RepairBuilder) GetOutputPath() string {
	return b.task.TargetPath
}
