package repair

import (
	"strings"
	"testing"

	"fixmerge/command"
	"fixmerge/models"
)

func TestRepairBuilder_BuildArgs(t *testing.T) {
	task := models.RepairTask{
		SourcePath: "/src/example.webm",
		TargetPath: "/target/example.fixed.cuda.webm",
	}

	args := NewRepairBuilder(task).BuildArgs()
	expected := []string{
		"-i", "/src/example.webm",
		"-pix_fmt", "yuv420p",
		"-c", "copy",
		"-fflags", "+genpts",
		"-y", "/target/example.fixed.cuda.webm",
	}

	if strings.Join(args, " ") != strings.Join(expected, " ") {
		t.Errorf("BuildArgs() = %v; want %v", args, expected)
	}
}

func TestRepairBuilder_NoReencode(t *testing.T) {
	args := strings.Join(NewRepairBuilder(models.RepairTask{SourcePath: "a", TargetPath: "b"}).BuildArgs(), " ")

	for _, forbidden := range []string{"-c:v", "-c:a", "-vf", "-hwaccel"} {
		if strings.Contains(args, forbidden) {
			t.Errorf("repair args should not contain %s: %s", forbidden, args)
		}
	}
	if !strings.HasSuffix(args, "-y b") {
		t.Errorf("output must be last and overwritten: %s", args)
	}
}

func TestRepairBuilder_Metadata(t *testing.T) {
	task := models.RepairTask{SourcePath: "/src/a.webm", TargetPath: "/target/a.fixed.none.webm"}
	var cmd command.Command = NewRepairBuilder(task)

	if cmd.GetTaskType() != command.TaskTypeRepair {
		t.Errorf("GetTaskType() = %s; want repair", cmd.GetTaskType())
	}
	if cmd.GetInputPath() != task.SourcePath {
		t.Errorf("GetInputPath() = %s", cmd.GetInputPath())
	}
	if cmd.GetOutputPath() != task.TargetPath {
		t.Errorf("GetOutputPath() = %s", cmd.GetOutputPath())
	}

	line, err := cmd.DryRun("/usr/local/bin/ffmpeg")
	if err != nil {
		t.Fatalf("DryRun() error: %v", err)
	}
	if !strings.HasPrefix(line, "/usr/local/bin/ffmpeg -i /src/a.webm") {
		t.Errorf("DryRun() = %q", line)
	}
}
