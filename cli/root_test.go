package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"fixmerge/command"
	"fixmerge/pipeline"
)

type recordingRunner struct {
	args   [][]string
	result command.Result
}

func (r *recordingRunner) Run(_ context.Context, _ zerolog.Logger, _ string, args ...string) command.Result {
	r.args = append(r.args, args)
	return r.result
}

func execute(t *testing.T, runner *recordingRunner, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(runner)
	var stderr bytes.Buffer
	cmd.SetOut(&stderr)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stderr.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixmerge.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRoot_CodecModes(t *testing.T) {
	cfgPath := writeConfig(t, "log_level: error\n")

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"all", []string{"--codecs"}, []string{"-hide_banner", "-codecs"}},
		{"one", []string{"--codec", "h264_vaapi"}, []string{"-hide_banner", "-h", "encoder=h264_vaapi"}},
		{"codecs wins", []string{"--codec", "h264_vaapi", "--codecs", "--hardware", "cuda"}, []string{"-hide_banner", "-codecs"}},
		{"unknown flags ignored", []string{"--codecs", "--bogus", "stray"}, []string{"-hide_banner", "-codecs"}},
		{"bad log level ignored", []string{"--codecs", "--log-level", "bogus"}, []string{"-hide_banner", "-codecs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &recordingRunner{}
			args := append([]string{"--config", cfgPath}, tt.args...)
			if _, err := execute(t, runner, args...); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if len(runner.args) != 1 || !reflect.DeepEqual(runner.args[0], tt.want) {
				t.Errorf("invocations = %v, want one with %v", runner.args, tt.want)
			}
		})
	}
}

func TestRoot_TranscodeFromConfigFile(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "target")
	cfgPath := writeConfig(t, "source_dir: "+filepath.Join(root, "src")+"\n"+
		"target_dir: "+target+"\n"+
		"inputs: [a.webm, b.webm, c.webm]\n"+
		"startup_delay: 0s\n"+
		"log_level: error\n")

	runner := &recordingRunner{}
	if _, err := execute(t, runner, "--config", cfgPath, "--hardware", "qsv"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(runner.args) != 4 {
		t.Fatalf("expected 3 repairs and 1 merge, got %d invocations", len(runner.args))
	}
	wantRepair := filepath.Join(target, "a.fixed.qsv.webm")
	if got := runner.args[0][len(runner.args[0])-1]; got != wantRepair {
		t.Errorf("first repair target = %s, want %s", got, wantRepair)
	}
	merge := runner.args[3]
	if got := merge[len(merge)-1]; got != wantRepair+".mp4" {
		t.Errorf("merge output = %s, want %s.mp4", got, wantRepair)
	}
}

func TestRoot_DryRun(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "target")
	cfgPath := writeConfig(t, "target_dir: "+target+"\n"+
		"ffmpeg_path: /opt/ffmpeg/bin/ffmpeg\n"+
		"startup_delay: 0s\n")

	runner := &recordingRunner{}
	out, err := execute(t, runner, "--config", cfgPath, "--hardware", "cuda", "--dry-run")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(runner.args) != 0 {
		t.Errorf("dry run must not spawn ffmpeg, got %d invocations", len(runner.args))
	}
	if n := strings.Count(out, "/opt/ffmpeg/bin/ffmpeg "); n != 3 {
		t.Errorf("expected 3 logged command lines, got %d:\n%s", n, out)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("dry run must not create %s", target)
	}
}

func TestRoot_UnsupportedBackend(t *testing.T) {
	cfgPath := writeConfig(t, "startup_delay: 0s\n")
	runner := &recordingRunner{}

	_, err := execute(t, runner, "--config", cfgPath, "--hardware", "opencl")
	if err == nil || !strings.Contains(err.Error(), "opencl") {
		t.Fatalf("expected an unsupported backend error naming opencl, got %v", err)
	}
	if len(runner.args) != 0 {
		t.Errorf("no invocation expected, got %d", len(runner.args))
	}
}

func TestRoot_StageFailureIsReturned(t *testing.T) {
	root := t.TempDir()
	cfgPath := writeConfig(t, "source_dir: "+filepath.Join(root, "src")+"\n"+
		"target_dir: "+filepath.Join(root, "target")+"\n"+
		"startup_delay: 0s\n")
	runner := &recordingRunner{result: command.Result{ExitCode: 1}}

	out, err := execute(t, runner, "--config", cfgPath)
	if !errors.Is(err, pipeline.ErrStageFailed) {
		t.Fatalf("expected ErrStageFailed, got %v", err)
	}
	if len(runner.args) != 3 {
		t.Errorf("best effort run should reach the merge, got %d invocations", len(runner.args))
	}
	if !strings.Contains(out, "ffmpeg failed") {
		t.Errorf("failures should be logged, output:\n%s", out)
	}
}
