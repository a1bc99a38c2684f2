package cmd

import (
	"github.com/gnames/treetax/pkg/config"
	"github.com/spf13/cobra"
)

// logFlags converts persistent log flags that were set on the command
// line to config options.
func logFlags(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()

	if flags.Changed("log-level") {
		s, _ := flags.GetString("log-level")
		res = append(res, config.OptLogLevel(s))
	}
	if flags.Changed("log-file") {
		s, _ := flags.GetString("log-file")
		res = append(res, config.OptLogFile(s))
	}
	return res
}
