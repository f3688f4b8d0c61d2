package command

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type logEntry struct {
	Level   string  `json:"level"`
	Message string  `json:"message"`
	Frame   int64   `json:"frame"`
	Bitrate string  `json:"bitrate"`
	Speed   float64 `json:"speed"`
}

func decodeLog(t *testing.T, buf *bytes.Buffer) []logEntry {
	t.Helper()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func messages(entries []logEntry) []string {
	var msgs []string
	for _, e := range entries {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

func TestScanLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Newlines", "a\nb\n", []string{"a", "b"}},
		{"Carriage returns", "frame=1\rframe=2\rdone\n", []string{"frame=1", "frame=2", "done"}},
		{"CRLF", "a\r\nb", []string{"a", "", "b"}},
		{"No trailing newline", "tail", []string{"tail"}},
		{"Empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			data := []byte(tt.input)
			for len(data) > 0 {
				advance, token, err := scanLines(data, true)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if advance == 0 {
					break
				}
				got = append(got, string(token))
				data = data[advance:]
			}
			if strings.Join(got, "|") != strings.Join(tt.expected, "|") || len(got) != len(tt.expected) {
				t.Errorf("scanLines(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExecRunner_Forward(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	output := "Input #0, matroska,webm, from 'a.webm':\n" +
		"frame=   10 fps=25.0 size=    64kB time=00:00:00.40 bitrate=1280.0kbits/s speed=1.0x\r" +
		"frame=   20 fps=25.0 size=   128kB time=00:00:00.80 bitrate=1280.0kbits/s speed=1.5x\r\n" +
		"\n" +
		"video:128kB audio:12kB\n"

	NewExecRunner().forward(strings.NewReader(output), log)

	entries := decodeLog(t, &buf)
	expected := []string{"Input #0, matroska,webm, from 'a.webm':", "progress", "progress", "video:128kB audio:12kB"}
	got := messages(entries)
	if strings.Join(got, "|") != strings.Join(expected, "|") {
		t.Fatalf("forwarded messages = %q; want %q", got, expected)
	}
	if entries[2].Frame != 20 || entries[2].Speed != 1.5 || entries[2].Bitrate != "1280.0kbits/s" {
		t.Errorf("progress entry = %+v; want frame 20 speed 1.5 bitrate 1280.0kbits/s", entries[2])
	}
}

func requireShell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestExecRunner_Run_ExitCode(t *testing.T) {
	sh := requireShell(t)
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	result := NewExecRunner().Run(context.Background(), log, sh, "-c", "echo out; echo err 1>&2; exit 3")

	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d; want 3", result.ExitCode)
	}
	if result.Success() {
		t.Error("Success() should be false for exit code 3")
	}

	got := messages(decodeLog(t, &buf))
	joined := strings.Join(got, "|")
	if !strings.Contains(joined, "out") || !strings.Contains(joined, "err") {
		t.Errorf("expected stdout and stderr to be forwarded, got %q", got)
	}
}

func TestExecRunner_Run_Success(t *testing.T) {
	sh := requireShell(t)
	result := NewExecRunner().Run(context.Background(), zerolog.Nop(), sh, "-c", "exit 0")
	if !result.Success() {
		t.Errorf("expected success, got %+v", result)
	}
}

func TestExecRunner_Run_SpawnFailure(t *testing.T) {
	var buf bytes.Buffer
	result := NewExecRunner().Run(context.Background(), zerolog.New(&buf), "/nonexistent/ffmpeg", "-codecs")

	if result.Err == nil {
		t.Fatal("expected spawn error")
	}
	if result.ExitCode != -1 {
		t.Errorf("ExitCode = %d; want -1", result.ExitCode)
	}
	if !strings.Contains(buf.String(), "failed to start") {
		t.Errorf("spawn failure not logged: %s", buf.String())
	}
}

func TestExecRunner_Run_Cancelled(t *testing.T) {
	sh := requireShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := NewExecRunner().Run(ctx, zerolog.Nop(), sh, "-c", "sleep 5")
	if result.Err == nil {
		t.Errorf("expected cancellation error, got %+v", result)
	}
}
