package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RepairTask describes one repair invocation.
type RepairTask struct {
	SourcePath string
	TargetPath string
}

// MergeTask describes the single merge+encode invocation. InputPaths keeps
// the declaration order of the source files.
type MergeTask struct {
	InputPaths []string
	ListPath   string
	OutputPath string
}

// FixedName derives the repaired file name for a source name:
// "example.webm" with cuda becomes "example.fixed.cuda.webm".
func FixedName(name string, backend Backend) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if base == "" {
		// Dotfiles such as ".webm" have no extension of their own.
		base, ext = name, ""
	}
	return base + ".fixed." + backend.Marker() + ext
}

// NewRepairTasks builds one task per input name, in order.
func NewRepairTasks(rc RunConfig) []RepairTask {
	tasks := make([]RepairTask, 0, len(rc.Inputs))
	for _, name := range rc.Inputs {
		tasks = append(tasks, RepairTask{
			SourcePath: filepath.Join(rc.SourceDir, name),
			TargetPath: filepath.Join(rc.TargetDir, FixedName(name, rc.Backend)),
		})
	}
	return tasks
}

// NewMergeTask builds the merge task for the repaired paths. The output is
// written next to the first repaired file with an ".mp4" suffix and the
// concat manifest next to the output.
func NewMergeTask(repaired []string) (MergeTask, error) {
	if len(repaired) == 0 {
		return MergeTask{}, fmt.Errorf("merge task needs at least one input")
	}
	inputs := make([]string, len(repaired))
	copy(inputs, repaired)
	output := inputs[0] + ".mp4"
	return MergeTask{
		InputPaths: inputs,
		ListPath:   output + ".list",
		OutputPath: output,
	}, nil
}

// NeedsManifest reports whether the task concatenates several inputs.
func (mt MergeTask) NeedsManifest() bool {
	return len(mt.InputPaths) > 1
}
