package cmd

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/gridnav/internal/completion"
	"github.com/oakwood-commons/gridnav/internal/config"
	"github.com/oakwood-commons/gridnav/pkg/records"
)

// completeDisable completes --disable expressions. Record keys come from the
// records file argument, when one was given.
func completeDisable(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var fields []string
	if len(args) > 0 && args[0] != "-" {
		if recs, err := records.LoadFileWithLogger(args[0], logr.Discard()); err == nil && len(recs) > 0 && recs[0] != nil {
			fields = recs[0].Keys()
		}
	}
	e, err := completion.NewEngine(fields)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, c := range e.Complete(toComplete) {
		out = append(out, c.Text+"\t"+c.Kind.String())
	}
	return out, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
}

func fixedCompletions(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp)
}

func registerCompletions() {
	_ = rootCmd.RegisterFlagCompletionFunc("disable", completeDisable)
	_ = rootCmd.RegisterFlagCompletionFunc("mode", fixedCompletions(config.ModeSingle, config.ModeRange))
	_ = rootCmd.RegisterFlagCompletionFunc("keymap", fixedCompletions(config.KeyModes...))
	_ = rootCmd.RegisterFlagCompletionFunc("format", fixedCompletions("auto", "yaml", "json", "ndjson", "csv", "tsv"))
	_ = mapCmd.RegisterFlagCompletionFunc("output", fixedCompletions("yaml", "json", "toml", "tree", "mermaid"))
	_ = mapCmd.RegisterFlagCompletionFunc("direction", fixedCompletions("TD", "LR", "BT", "RL"))
}
