package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_WritesPlainText(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")

	log.Info().Str(FieldStage, "repair").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "stage=repair") {
		t.Errorf("unexpected output: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("buffer output should not be colored: %q", out)
	}
}

func TestNew_Level(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"Debug", "debug", true, true},
		{"Info", "info", false, true},
		{"Warn", "warn", false, false},
		{"Upper case", "DEBUG", true, true},
		{"Empty falls back to info", "", false, true},
		{"Unknown falls back to info", "loud", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, tt.level)
			log.Debug().Msg("debug-line")
			log.Info().Msg("info-line")

			out := buf.String()
			if got := strings.Contains(out, "debug-line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v; want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info-line"); got != tt.wantInfo {
				t.Errorf("info logged = %v; want %v", got, tt.wantInfo)
			}
		})
	}
}

func TestColorEnabled_NonFile(t *testing.T) {
	if colorEnabled(&bytes.Buffer{}) {
		t.Error("non-file writers should never be colored")
	}
}
