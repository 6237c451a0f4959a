package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cheerioskun/grepninja/internal/config"
	"github.com/cheerioskun/grepninja/internal/models"
	"github.com/cheerioskun/grepninja/internal/utils"
	"github.com/cheerioskun/grepninja/ui"
	"github.com/spf13/cobra"
)

var (
	ErrNotTerminal = errors.New("tui requires an interactive terminal")
	ErrStdinInTUI  = errors.New("tui cannot search standard input; pass file or directory paths")
)

// NewTUICommand creates the interactive search command
func NewTUICommand(env *Env) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui PATTERN PATH...",
		Short: "Start an interactive search",
		Long: `Start an interactive search over the given paths.

The pattern can be edited while results update live. Ignore-case,
invert and count mode can be toggled from the keyboard.

Examples:
  grepninja tui error /var/log/syslog
  grepninja tui -r 'timeout|refused' ./logs`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(env.Viper, cmd.Flags(), searchKeys)

			cfg, err := config.Load(env.Viper, args)
			if err != nil {
				return err
			}
			if err := checkTUIConfig(cfg); err != nil {
				return err
			}
			if !utils.IsTerminal(os.Stdout) {
				return ErrNotTerminal
			}

			// The alternate screen owns the terminal, so logs go to a file
			if logFile != "" {
				logger, err := utils.NewLogger(logFile)
				if err != nil {
					return err
				}
				previous := utils.GetLogger()
				utils.SetDefaultLogger(logger)
				defer func() {
					utils.SetDefaultLogger(previous)
					logger.Close()
				}()
			}

			utils.Debug("starting tui over %d paths", len(cfg.Paths))

			program := tea.NewProgram(ui.NewAppModel(cfg, env.Fs), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("TUI error: %w", err)
			}
			return nil
		},
	}

	addSearchFlags(cmd.Flags())
	cmd.Flags().StringVar(&logFile, "log-file", "", "write log output to this file while the TUI runs")

	return cmd
}

// checkTUIConfig rejects configurations the interactive mode cannot serve
func checkTUIConfig(cfg *config.Search) error {
	for _, path := range cfg.Paths {
		if path == models.StdinName {
			return ErrStdinInTUI
		}
	}
	return nil
}
