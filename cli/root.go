// Package cli wires the fixmerge root command: flags, config layering,
// logging and dispatch to the pipeline or the codec listing.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fixmerge/command"
	"fixmerge/config"
	"fixmerge/internal/logging"
	"fixmerge/models"
	"fixmerge/pipeline"
)

// NewRootCommand builds the fixmerge command spawning ffmpeg through
// runner, or through an ExecRunner when runner is nil. Unknown flags and
// positional arguments are accepted and ignored.
func NewRootCommand(runner command.Runner) *cobra.Command {
	if runner == nil {
		runner = command.NewExecRunner()
	}

	cmd := &cobra.Command{
		Use:   "fixmerge",
		Short: "Repair, merge and re-encode video clips with ffmpeg",
		Long: "fixmerge repairs each input clip into the target directory, then merges\n" +
			"the repaired clips into a single mp4 using the selected hardware backend.",
		Args:               cobra.ArbitraryArgs,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		SilenceUsage:       true,
		SilenceErrors:      true,
	}
	flags := config.BindFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig(flags)
		if err != nil {
			return err
		}
		rc, err := cfg.Resolve()
		if err != nil {
			return err
		}

		log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
		logConfig(log, cfg)

		if rc.Mode == models.ModeListCodecs {
			return pipeline.ListCodecs(cmd.Context(), rc, runner, log)
		}

		report, err := pipeline.New(rc, runner, log).Run(cmd.Context())
		if err == nil {
			log.Info().Str(logging.FieldOutput, report.OutputPath).Msg("done")
		}
		return err
	}

	return cmd
}

func logConfig(log zerolog.Logger, cfg *config.Config) {
	if e := log.Debug(); e.Enabled() {
		out, err := cfg.YAML()
		if err != nil {
			e.Err(err).Msg("failed to render config")
			return
		}
		e.Msg("effective config:\n" + out)
	}
}
