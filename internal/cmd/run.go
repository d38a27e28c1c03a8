package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/supertictactoe-bot/internal"
	"github.com/rocketscienceinc/supertictactoe-bot/internal/config"
)

func Run() *cobra.Command {
	run := &cobra.Command{
		Use:   "run",
		Short: "Connects to the game server and plays",
		Long: heredoc.Doc(`run connects to the game server configured in config.yml and
			plays the configured piece until the connection drops or the
			process is interrupted.

			Every value in the file can be overridden from the environment,
			e.g. BOT_PIECE=X or SEARCH_DEPTH=4.`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}

			conf := config.MustLoad(path)
			logger := initLogger(conf)

			if err = app.RunApp(cmd.Context(), logger, conf); err != nil {
				return fmt.Errorf("app run failed: %w", err)
			}

			return nil
		},
	}

	run.Flags().StringP("config", "c", "config.yml", "path to the config file")

	return run
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	level := slog.LevelInfo

	if conf.LogLevel == "debug" {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
