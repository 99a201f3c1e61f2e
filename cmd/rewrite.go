package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/nikto-adapter/pkg/command"
	"github.com/user/nikto-adapter/pkg/logging"
	"github.com/user/nikto-adapter/pkg/plugin"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite -- <nikto command...>",
	Short: "Rewrite a nikto command so it writes an XML report",
	Example: `  nikto-adapter rewrite -- nikto -host 10.0.0.1
  nikto-adapter rewrite --output /tmp/scan.xml -- sudo nikto.pl -h example.com`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		line := strings.Join(args, " ")

		output, _ := cmd.Flags().GetString("output")
		if output != "" {
			fmt.Println(command.Rewrite(line, output))
			return nil
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if ws, _ := cmd.Flags().GetString("workspace"); ws != "" {
			cfg.Workspace = ws
		}
		if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
			cfg.DataDir = dir
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}

		p, err := plugin.NewNikto(cfg, logging.New(cfg.Log))
		if err != nil {
			return err
		}
		rewritten, path, err := p.ProcessCommand(line)
		if err != nil {
			return err
		}

		fmt.Println(rewritten)
		if showPath, _ := cmd.Flags().GetBool("print-path"); showPath {
			fmt.Fprintln(os.Stderr, path)
		}
		return nil
	},
}

func init() {
	rewriteCmd.Flags().StringP("workspace", "w", "", "Workspace name used in the report file name")
	rewriteCmd.Flags().StringP("data-dir", "d", "", "Directory the report is written to")
	rewriteCmd.Flags().StringP("output", "o", "", "Use this report path instead of generating one")
	rewriteCmd.Flags().Bool("print-path", false, "Print the generated report path on stderr")
	rootCmd.AddCommand(rewriteCmd)
}
