// Package pipeline runs the repair stage over every input, one at a time,
// then the single merge+encode stage, and reports the elapsed time.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"fixmerge/command"
	"fixmerge/command/merge"
	"fixmerge/command/repair"
	"fixmerge/concatenator"
	"fixmerge/internal/logging"
	"fixmerge/internal/timeutil"
	"fixmerge/models"
)

var (
	// ErrIO marks directory or manifest failures. They halt the run.
	ErrIO = errors.New("i/o failure")
	// ErrStageFailed marks a run in which at least one ffmpeg invocation
	// failed to start or exited non-zero.
	ErrStageFailed = errors.New("stage failed")
)

// Pipeline executes one transcode run.
type Pipeline struct {
	cfg    models.RunConfig
	runner command.Runner
	log    zerolog.Logger
}

// New creates a pipeline for cfg that spawns ffmpeg through runner.
func New(cfg models.RunConfig, runner command.Runner, log zerolog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, runner: runner, log: log}
}

// Run waits for the startup delay, repairs every input in declaration
// order, merges the repaired files and returns the report.
//
// Failed stages are logged and, unless FailFast is set, the run goes on
// with whatever the failed stage left behind. The returned error wraps
// ErrStageFailed when any stage failed, ErrIO when the filesystem refused a
// write, or the context error when the run was interrupted. The report is
// never nil.
func (p *Pipeline) Run(ctx context.Context) (*models.Report, error) {
	report := &models.Report{}

	p.log.Info().
		Str(logging.FieldBackend, p.cfg.Backend.String()).
		Str("source_dir", p.cfg.SourceDir).
		Str("target_dir", p.cfg.TargetDir).
		Int("inputs", len(p.cfg.Inputs)).
		Msg("starting pipeline")

	if err := wait(ctx, p.cfg.StartupDelay); err != nil {
		return report, err
	}

	start := time.Now()
	defer func() {
		report.Elapsed = time.Since(start)
		p.log.Info().Str("elapsed", timeutil.FormatDuration(report.Elapsed)).Msg("time taken")
	}()

	repaired, err := p.repairAll(ctx, report)
	if err != nil {
		return report, err
	}

	if err := p.merge(ctx, repaired, report); err != nil {
		return report, err
	}

	if failed := report.Failed(); len(failed) > 0 {
		return report, fmt.Errorf("%w: %s", ErrStageFailed, report.Summary())
	}
	return report, nil
}

// repairAll runs the repair stage for every input, strictly one after the
// other, and returns the repaired paths in input order.
func (p *Pipeline) repairAll(ctx context.Context, report *models.Report) ([]string, error) {
	tasks := models.NewRepairTasks(p.cfg)
	repaired := make([]string, 0, len(tasks))

	for i, task := range tasks {
		log := p.log.With().
			Str(logging.FieldStage, string(command.TaskTypeRepair)).
			Str(logging.FieldInput, filepath.Base(task.SourcePath)).
			Logger()

		if err := p.ensureDir(filepath.Dir(task.TargetPath)); err != nil {
			return nil, err
		}

		log.Info().Str(logging.FieldOutput, task.TargetPath).Msgf("repairing %d/%d", i+1, len(tasks))
		builder := repair.NewRepairBuilder(task)
		res := execute(ctx, p.cfg, p.runner, log, builder)

		sr := stageResult(builder, res)
		report.Add(sr)
		repaired = append(repaired, task.TargetPath)

		if err := p.checkStage(ctx, log, sr); err != nil {
			return nil, err
		}
	}

	return repaired, nil
}

// merge writes the concat manifest when needed and runs the merge stage.
func (p *Pipeline) merge(ctx context.Context, repaired []string, report *models.Report) error {
	task, err := models.NewMergeTask(repaired)
	if err != nil {
		return err
	}

	builder := merge.NewMergeBuilder(task).
		SetBackend(p.cfg.Backend).
		SetVariant(p.cfg.Variant)
	if err := builder.Validate(); err != nil {
		return err
	}

	log := p.log.With().
		Str(logging.FieldStage, string(command.TaskTypeMerge)).
		Str(logging.FieldBackend, p.cfg.Backend.String()).
		Logger()

	if !p.cfg.DryRun {
		if missing := concatenator.MissingInputs(task.InputPaths); len(missing) > 0 {
			log.Warn().Strs("missing", missing).Msg("merging with missing or empty inputs")
		}
		if err := p.ensureDir(filepath.Dir(task.OutputPath)); err != nil {
			return err
		}
		if task.NeedsManifest() {
			if err := concatenator.WriteManifest(task.InputPaths, task.ListPath); err != nil {
				return fmt.Errorf("%w: %w", ErrIO, err)
			}
			log.Debug().Str("manifest", task.ListPath).Int("entries", len(task.InputPaths)).Msg("wrote concat manifest")
		}
	}

	log.Info().Str(logging.FieldOutput, task.OutputPath).Int("inputs", len(task.InputPaths)).Msg("merging")
	res := execute(ctx, p.cfg, p.runner, log, builder)

	sr := stageResult(builder, res)
	report.Add(sr)
	report.OutputPath = task.OutputPath

	if !sr.Success() && ctx.Err() == nil && p.cfg.Backend.IsHardware() {
		log.Warn().Msgf("check that %s supports the %s backend (fixmerge --codecs)", p.cfg.FFmpegPath, p.cfg.Backend)
	}
	if err := p.checkStage(ctx, log, sr); err != nil {
		return err
	}
	if sr.Success() {
		log.Info().Str(logging.FieldOutput, task.OutputPath).Msg("merge complete")
	}
	return nil
}

// checkStage logs a failed stage and decides whether the run stops.
func (p *Pipeline) checkStage(ctx context.Context, log zerolog.Logger, sr models.StageResult) error {
	if sr.Success() {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	event := log.Error().Int("exit_code", sr.ExitCode)
	if sr.Err != nil {
		event = event.Err(sr.Err)
	}
	event.Msg("ffmpeg failed")

	if p.cfg.FailFast {
		return fmt.Errorf("%w: %s", ErrStageFailed, sr.Describe())
	}
	return nil
}

func (p *Pipeline) ensureDir(dir string) error {
	if p.cfg.DryRun {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory %s: %w", ErrIO, dir, err)
	}
	return nil
}

// execute runs cmd through runner, or only logs its command line on dry
// runs.
func execute(ctx context.Context, cfg models.RunConfig, runner command.Runner, log zerolog.Logger, cmd command.Command) command.Result {
	if !cfg.DryRun {
		return runner.Run(ctx, log, cfg.FFmpegPath, cmd.BuildArgs()...)
	}
	line, err := cmd.DryRun(cfg.FFmpegPath)
	if err != nil {
		return command.Result{ExitCode: -1, Err: err}
	}
	log.Info().Str("cmd", line).Msg("dry run")
	return command.Result{}
}

func stageResult(cmd command.Command, res command.Result) models.StageResult {
	return models.StageResult{
		Stage:      string(cmd.GetTaskType()),
		Input:      cmd.GetInputPath(),
		OutputPath: cmd.GetOutputPath(),
		ExitCode:   res.ExitCode,
		Err:        res.Err,
	}
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
