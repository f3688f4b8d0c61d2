package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"fixmerge/command"
	"fixmerge/command/codecs"
	"fixmerge/internal/logging"
	"fixmerge/models"
)

// ListCodecs runs the codec listing query for cfg, or logs it on dry runs.
// It reads and writes no files and skips the startup delay.
func ListCodecs(ctx context.Context, cfg models.RunConfig, runner command.Runner, log zerolog.Logger) error {
	builder := codecs.NewCodecsBuilder(cfg.CodecFilter)
	log = log.With().Str(logging.FieldStage, string(builder.GetTaskType())).Logger()

	res := execute(ctx, cfg, runner, log, builder)
	if res.Err != nil {
		return fmt.Errorf("%w: codec listing: %w", ErrStageFailed, res.Err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("%w: codec listing: exit code %d", ErrStageFailed, res.ExitCode)
	}
	return nil
}
