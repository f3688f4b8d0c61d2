package models

import (
	"fmt"
	"strings"
	"time"
)

// StageResult represents the outcome of one external tool invocation.
//
// A stage succeeded when Err is nil and ExitCode is zero. Err carries spawn
// failures (missing binary, cancelled context); a non-zero ExitCode alone
// means ffmpeg ran and reported failure.
type StageResult struct {
	Stage      string `json:"stage"`
	Input      string `json:"input"`
	OutputPath string `json:"output_path"`
	ExitCode   int    `json:"exit_code"`
	Err        error  `json:"error"`
}

// Success reports whether the stage completed with exit code zero.
func (sr StageResult) Success() bool {
	return sr.Err == nil && sr.ExitCode == 0
}

// Describe returns a short human-readable outcome.
func (sr StageResult) Describe() string {
	switch {
	case sr.Err != nil:
		return fmt.Sprintf("%s %s: %v", sr.Stage, sr.Input, sr.Err)
	case sr.ExitCode != 0:
		return fmt.Sprintf("%s %s: exit code %d", sr.Stage, sr.Input, sr.ExitCode)
	default:
		return fmt.Sprintf("%s %s: ok", sr.Stage, sr.Input)
	}
}

// Report collects every stage of a run in execution order.
type Report struct {
	Stages     []StageResult
	OutputPath string
	Elapsed    time.Duration
}

// Add appends a stage result.
func (r *Report) Add(sr StageResult) {
	r.Stages = append(r.Stages, sr)
}

// Failed returns the stages that did not succeed, in order.
func (r *Report) Failed() []StageResult {
	var failed []StageResult
	for _, sr := range r.Stages {
		if !sr.Success() {
			failed = append(failed, sr)
		}
	}
	return failed
}

// Summary joins the failed stage descriptions, or returns "" when every
// stage succeeded.
func (r *Report) Summary() string {
	failed := r.Failed()
	if len(failed) == 0 {
		return ""
	}
	parts := make([]string, len(failed))
	for i, sr := range failed {
		parts[i] = sr.Describe()
	}
	return strings.Join(parts, "; ")
}
