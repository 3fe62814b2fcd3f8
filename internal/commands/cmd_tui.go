package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/gallery/internal/core/gallery"
	"github.com/colonyops/gallery/internal/core/logging"
	"github.com/colonyops/gallery/internal/debugsrv"
	"github.com/colonyops/gallery/internal/metrics"
	"github.com/colonyops/gallery/internal/tui"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "debug-port",
			Usage:       "serve pprof and /metrics on the specified port (e.g., 6060)",
			Sources:     cli.EnvVars("GALLERY_DEBUG_PORT"),
			Destination: &cmd.flags.DebugPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

var errNoTerminal = errors.New("stdout is not a terminal; use 'gallery photos' for non-interactive output")

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if err := cmd.flags.Config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	cfg := cmd.flags.Config

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New(reg)

	if cmd.flags.DebugPort > 0 {
		srv := debugsrv.New(cmd.flags.DebugPort, reg)
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("failed to start debug server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown debug server")
			}
		}()
		log.Info().
			Str("pprof", fmt.Sprintf("http://%s/debug/pprof/", srv.Addr())).
			Str("metrics", fmt.Sprintf("http://%s/metrics", srv.Addr())).
			Msg("debug endpoints available")
	}

	gm := gallery.NewModel(cmd.flags.Source(),
		gallery.WithTimeout(cfg.API.Timeout),
		gallery.WithObserver(recorder),
		gallery.WithLogger(logging.SessionComponent("gallery", cmd.flags.SessionID)),
	)

	m := tui.New(ctx, gm, tui.Options{
		ItemSize:      cfg.Layout.ItemSize,
		ItemSpacing:   cfg.Layout.ItemSpacing,
		FrameInterval: cfg.FrameInterval(),
		Observer:      recorder,
	})

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
