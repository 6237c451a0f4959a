package cmd

import (
	"io"
	"os"

	"github.com/cheerioskun/grepninja/internal/config"
	"github.com/cheerioskun/grepninja/internal/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// Env carries the collaborators a command needs. Tests replace the
// filesystem and the standard streams.
type Env struct {
	Fs    afero.Fs
	Stdin io.Reader
	Viper *viper.Viper
}

// DefaultEnv returns the environment backed by the OS filesystem and stdin
func DefaultEnv() *Env {
	return &Env{
		Fs:    afero.NewOsFs(),
		Stdin: os.Stdin,
		Viper: config.NewViper(),
	}
}

// NewRootCommand creates and returns the root cobra command for grepninja
func NewRootCommand(env *Env) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "grepninja",
		Short: "Search files for lines matching a pattern",
		Long: `grepninja searches files, directories and standard input for lines
matching a regular expression.

Each path is resolved on its own: a missing file or an unreadable
directory is reported and the remaining paths are still searched.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ReadConfigFile(env.Viper, configFile); err != nil {
				return err
			}
			utils.SetDebug(env.Viper.GetBool(config.KeyVerbose))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ./.grepninja.yaml or $HOME/.grepninja.yaml)")
	cmd.PersistentFlags().Bool(config.KeyVerbose, false, "verbose debug output on stderr")
	env.Viper.BindPFlag(config.KeyVerbose, cmd.PersistentFlags().Lookup(config.KeyVerbose))

	// Add subcommands
	cmd.AddCommand(NewSearchCommand(env))
	cmd.AddCommand(NewScanCommand(env))
	cmd.AddCommand(NewTUICommand(env))

	return cmd
}
