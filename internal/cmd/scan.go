package cmd

import (
	"fmt"

	"github.com/cheerioskun/grepninja/internal/config"
	"github.com/cheerioskun/grepninja/internal/models"
	"github.com/cheerioskun/grepninja/internal/scanner"
	"github.com/spf13/cobra"
)

var scanKeys = []string{config.KeyRecursive, config.KeyMaxDepth}

// NewScanCommand creates the scan command, which resolves paths without searching them
func NewScanCommand(env *Env) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "scan [PATH...]",
		Short: "List the sources a search would read",
		Long: `Resolve each PATH the way search does and list the result.

This shows which files a recursive search would visit and which paths
would be reported as errors, without reading any file contents.

Examples:
  grepninja scan -r /var/log
  grepninja scan -r --max-depth 2 ./logs --output yaml
  grepninja scan missing.txt ./dir`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(env.Viper, cmd.Flags(), scanKeys)

			if len(args) == 0 {
				args = []string{models.StdinName}
			}
			recursive := env.Viper.GetBool(config.KeyRecursive)
			maxDepth := env.Viper.GetInt(config.KeyMaxDepth)
			if maxDepth < 0 {
				return fmt.Errorf("%w: %d", config.ErrInvalidDepth, maxDepth)
			}

			resolver := scanner.NewResolver(env.Fs)
			resolver.SetMaxDepth(maxDepth)
			entries := resolver.Resolve(args, recursive)

			out := cmd.OutOrStdout()
			switch output {
			case "yaml":
				data, err := scanner.NewManifest(entries, recursive).Encode()
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			case "text":
				for _, entry := range entries {
					fmt.Fprintln(out, entry.String())
				}
				readable := models.CountReadable(entries)
				fmt.Fprintf(out, "\n%d readable, %d unresolvable\n", readable, len(entries)-readable)
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want text or yaml)", output)
			}
		},
	}

	flags := cmd.Flags()
	flags.BoolP(config.KeyRecursive, "r", false, "recursively enumerate directories")
	flags.Int(config.KeyMaxDepth, 0, "maximum directory depth when recursing (0 = unlimited)")
	flags.StringVarP(&output, "output", "o", "text", "output format: text or yaml")

	return cmd
}
