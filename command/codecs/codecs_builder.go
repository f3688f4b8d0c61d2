// Package codecs builds the diagnostic ffmpeg queries that list the
// available codecs or describe one encoder.
package codecs

import (
	"fixmerge/command"
)

// CodecsBuilder builds a codec listing query. With an empty encoder name it
// lists every codec; otherwise it prints that encoder's option help.
type CodecsBuilder struct {
	encoder string
}

// NewCodecsBuilder creates a query for encoder, or for all codecs when
// encoder is empty.
func NewCodecsBuilder(encoder string) *CodecsBuilder {
	return &CodecsBuilder{encoder: encoder}
}

// BuildArgs constructs the ffmpeg arguments for the query
func (b *CodecsBuilder) BuildArgs() []string {
	if b.encoder == "" {
		return []string{"-hide_banner", "-codecs"}
	}
	return []string{"-hide_banner", "-h", "encoder=" + b.encoder}
}

// DryRun returns the command line program would be run with
func (b *CodecsBuilder) DryRun(program string) (string, error) {
	return command.FormatCommandLine(program, b.BuildArgs()), nil
}

// GetTaskType returns the task type identifier
func (b *CodecsBuilder) GetTaskType() command.TaskType {
	return command.TaskTypeCodecs
}

// GetInputPath returns "" since queries read no files
func (b *CodecsBuilder) GetInputPath() string {
	return ""
}

// GetOutputPath returns "" since queries write no files
func (b *CodecsBuilder) GetOutputPath() string {
	return ""
}
