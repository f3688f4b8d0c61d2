// Package command provides the Command interface implemented by the ffmpeg
// argument builders, and the Runner primitive that executes them.
//
// Builders never spawn processes themselves. A Command only knows how to
// produce its argument list; a Runner executes a program with that list,
// forwards the output line by line to a logger and reports the exit code:
//
//	builder := repair.NewRepairBuilder(task)
//	result := runner.Run(ctx, log, "ffmpeg", builder.BuildArgs()...)
//	if !result.Success() {
//		log.Error().Int("exit_code", result.ExitCode).Msg("repair failed")
//	}
package command

import (
	"strconv"
	"strings"
)

// TaskType represents the stage a command belongs to.
type TaskType string

const (
	TaskTypeRepair TaskType = "repair" // Pixel format and timestamp repair
	TaskTypeMerge  TaskType = "merge"  // Concatenation and re-encode
	TaskTypeCodecs TaskType = "codecs" // Codec listing queries
)

// Command represents an ffmpeg invocation that can be built or previewed.
type Command interface {
	// BuildArgs constructs and returns the ffmpeg arguments, without the
	// program name. The returned slice is suitable for Runner.Run.
	BuildArgs() []string

	// DryRun returns the command line for program without executing it,
	// in the form "<program> <args...>", or an error when it cannot be
	// built.
	DryRun(program string) (string, error)

	// GetTaskType returns the stage of this command.
	GetTaskType() TaskType

	// GetInputPath returns the primary input path, or "" for queries.
	GetInputPath() string

	// GetOutputPath returns the output path, or "" for queries.
	GetOutputPath() string
}

// FormatCommandLine renders program and args as a single shell-like line.
// Arguments containing whitespace or quotes are quoted.
func FormatCommandLine(program string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quoteArg(program))
	for _, arg := range args {
		parts = append(parts, quoteArg(arg))
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if arg == "" || strings.ContainsAny(arg, " \t\n'\"") {
		return strconv.Quote(arg)
	}
	return arg
}
