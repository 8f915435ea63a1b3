package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"ragdesk/internal/config"
	"ragdesk/internal/controller"
	"ragdesk/internal/endpoint"
	"ragdesk/internal/logging"
	"ragdesk/internal/ragapi"
	"ragdesk/internal/session"
)

// newRootCmd builds the command. envErr is a .env problem found before flags
// were registered; it is logged once logging is up.
func newRootCmd(envErr error) *cobra.Command {
	cfg := config.Config{}
	cmd := &cobra.Command{
		Use:           "ragdesk",
		Short:         "Terminal client for the conversational document Q&A service",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Normalize()
			return run(cfg, envErr)
		},
	}
	config.AddFlags(cmd.Flags(), &cfg)
	return cmd
}

func run(cfg config.Config, envErr error) error {
	logger, closer, err := logging.Setup(cfg.Logging())
	if err != nil {
		return err
	}
	defer closer.Close()
	if envErr != nil {
		logger.Warn().Err(envErr).Msg("ignoring malformed .env")
	}

	// resolved once; the base address never changes for the session
	baseURL := endpoint.Resolve(cfg.Host)
	client := ragapi.New(baseURL, ragapi.WithLogger(logger.With().Str("component", "ragapi").Logger()))
	store := session.NewStore()
	ctrl := controller.New(client, store, cfg.Controller(), logger)
	defer ctrl.Close()

	logger.Info().Str("base_url", baseURL.String()).Msg("ragdesk starting")

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(newModel(ctrl), opts...)
	if _, err := p.Run(); err != nil {
		logger.Error().Err(err).Msg("program exited with error")
		return errors.Wrap(err, "ragdesk")
	}
	logger.Info().Msg("ragdesk stopped")
	return nil
}

func main() {
	envErr := config.LoadDotEnv()
	if err := newRootCmd(envErr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ragdesk fatal error: %v\n", err)
		os.Exit(1)
	}
}
