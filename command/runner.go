package command

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"fixmerge/ffmpeg"
)

// waitDelay bounds how long Run waits for output pipes after the process
// is killed by context cancellation.
const waitDelay = 5 * time.Second

// Result is the outcome of one external invocation.
//
// Err is set when the program could not be started or was interrupted;
// ExitCode is -1 in that case. A non-zero ExitCode with a nil Err means the
// program ran and reported failure.
type Result struct {
	ExitCode int
	Err      error
}

// Success reports whether the program ran and exited with code zero.
func (r Result) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Runner executes an external program and forwards its output to log.
type Runner interface {
	Run(ctx context.Context, log zerolog.Logger, program string, args ...string) Result
}

// ExecRunner runs programs with os/exec. Stdout and stderr share one pipe
// and are logged line by line in arrival order.
type ExecRunner struct {
	parser *ffmpeg.ProgressParser
}

// NewExecRunner creates a runner that logs ffmpeg stats lines as
// structured progress events.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{parser: ffmpeg.NewProgressParser()}
}

// Run starts program, blocks until it exits and returns its exit code.
func (r *ExecRunner) Run(ctx context.Context, log zerolog.Logger, program string, args ...string) Result {
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.WaitDelay = waitDelay

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	log.Debug().Str("cmd", FormatCommandLine(program, args)).Msg("starting")

	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		log.Error().Err(err).Str("program", program).Msg("failed to start")
		return Result{ExitCode: -1, Err: fmt.Errorf("failed to start %s: %w", program, err)}
	}

	waitErr := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		pw.Close()
		waitErr <- err
	}()

	r.forward(pr, log)
	result := exitResult(<-waitErr)
	if ctx.Err() != nil && result.Err == nil && result.ExitCode != 0 {
		result = Result{ExitCode: -1, Err: ctx.Err()}
	}

	log.Debug().Int("exit_code", result.ExitCode).Msg("process exited")
	return result
}

// forward logs every line read from reader and drains whatever is left if
// the scanner stops early, so the writer side never blocks.
func (r *ExecRunner) forward(reader io.Reader, log zerolog.Logger) {
	scanner := bufio.NewScanner(reader)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	scanner.Split(scanLines)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if p, ok := r.parser.ParseLine(line); ok {
			log.Info().
				Int64("frame", p.Frame).
				Float64("fps", p.FPS).
				Str("time", p.Time).
				Str("size", p.Size).
				Str("bitrate", p.Bitrate).
				Float64("speed", p.Speed).
				Msg("progress")
			continue
		}
		log.Info().Msg(line)
	}
	if err := scanner.Err(); err != nil {
		log.Warn().Err(err).Msg("stopped reading process output")
	}
	_, _ = io.Copy(io.Discard, reader)
}

func exitResult(err error) Result {
	if err == nil {
		return Result{ExitCode: 0}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{ExitCode: exitErr.ExitCode()}
	}
	return Result{ExitCode: -1, Err: err}
}

// scanLines splits on "\n" or "\r". ffmpeg rewrites its stats line with
// carriage returns, so each refresh becomes its own token.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
