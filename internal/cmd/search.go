package cmd

import (
	"github.com/cheerioskun/grepninja/internal/config"
	"github.com/cheerioskun/grepninja/internal/search"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// searchKeys are the flags shared by every command that runs a search
var searchKeys = []string{
	config.KeyCount,
	config.KeyIgnoreCase,
	config.KeyInvert,
	config.KeyRecursive,
	config.KeyMaxDepth,
}

// NewSearchCommand creates the search command
func NewSearchCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search PATTERN [FILE...]",
		Aliases: []string{"grep"},
		Short:   "Print lines matching a pattern",
		Long: `Search each FILE for lines matching PATTERN and print them.

With no FILE, or when FILE is -, standard input is read. When more
than one source is searched every line is prefixed with its source name.

Examples:
  grepninja search error /var/log/syslog
  grepninja search -ri 'timeout|refused' ./logs
  grepninja search -c -v '^#' config.ini other.ini
  cat app.log | grepninja search panic`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(env.Viper, cmd.Flags(), searchKeys)

			cfg, err := config.Load(env.Viper, args)
			if err != nil {
				return err
			}

			searcher := search.NewSearcher(env.Fs, env.Stdin, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return searcher.Run(cfg)
		},
	}

	addSearchFlags(cmd.Flags())

	return cmd
}

// addSearchFlags registers the matching flags on fs
func addSearchFlags(fs *pflag.FlagSet) {
	fs.BoolP(config.KeyCount, "c", false, "only print a count of selected lines per source")
	fs.BoolP(config.KeyIgnoreCase, "i", false, "perform case insensitive matching")
	fs.BoolP(config.KeyInvert, "v", false, "select lines that do not match the pattern")
	fs.BoolP(config.KeyRecursive, "r", false, "recursively search directories")
	fs.Int(config.KeyMaxDepth, 0, "maximum directory depth when recursing (0 = unlimited)")
}

// bindFlags binds the named flags to viper. Binding happens when a command
// runs, so commands sharing a key never shadow each other's flags.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys []string) {
	for _, key := range keys {
		if flag := fs.Lookup(key); flag != nil {
			v.BindPFlag(key, flag)
		}
	}
}
