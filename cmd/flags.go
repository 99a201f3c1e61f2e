package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/nikto-adapter/pkg/command"
)

var flagsCmd = &cobra.Command{
	Use:   "flags [-- option...]",
	Short: "List the nikto options known to the adapter",
	Example: `  nikto-adapter flags
  nikto-adapter flags -- -output -Tuning`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags, err := selectFlags(args)
		if err != nil {
			return err
		}
		printFlags(os.Stdout, flags)
		return nil
	},
}

// selectFlags returns every known option, or only the named ones.
func selectFlags(names []string) ([]command.Flag, error) {
	if len(names) == 0 {
		return command.Flags(), nil
	}
	out := make([]command.Flag, 0, len(names))
	for _, name := range names {
		f, ok := command.LookupFlag(name)
		if !ok {
			return nil, fmt.Errorf("unknown nikto option %q", name)
		}
		out = append(out, f)
	}
	return out, nil
}

func printFlags(w io.Writer, flags []command.Flag) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range flags {
		arg := ""
		if f.TakesValue {
			arg = "<value>"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, arg, f.Help)
	}
	tw.Flush()
}

func init() {
	rootCmd.AddCommand(flagsCmd)
}
