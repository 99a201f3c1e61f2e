package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/user/nikto-adapter/pkg/model"
	"github.com/user/nikto-adapter/pkg/nikto"
	"github.com/user/nikto-adapter/pkg/plugin"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Rewrite nikto commands and import reports in a session",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, log, p, err := setup()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			fmt.Printf("Error creating data dir: %v\n", err)
			return
		}

		ctx := context.Background()
		store := model.NewStore()
		var pending []string

		scanner := bufio.NewScanner(os.Stdin)
		fmt.Println("\n---------------------------------------------------------")
		fmt.Printf("%s %s (plugin %s)\n", p.Name(), p.Version(), p.PluginVersion())
		fmt.Println(p.Description())
		fmt.Printf("Workspace: %s\n", cfg.Workspace)
		fmt.Println("Enter a nikto command to get its XML-producing form.")
		fmt.Println("Type 'import' once the scans finished, 'report' to show hosts,")
		fmt.Println("'quit' or 'exit' to stop.")
		fmt.Println("---------------------------------------------------------")

		for {
			fmt.Print("\n> ")
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())
			switch input {
			case "":
				continue
			case "quit", "exit":
				return
			case "report":
				fmt.Print(store.Report())
				continue
			case "import":
				var done []string
				done, pending = importReady(ctx, p, pending, store, log)
				for _, path := range done {
					color.Green("Imported %s", path)
				}
				if len(pending) > 0 {
					fmt.Printf("%d report(s) not finished yet\n", len(pending))
				}
				continue
			}

			rewritten, path, err := p.ProcessCommand(input)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			log.WithField("output", path).Debug("Queued report")
			pending = append(pending, path)
			color.Cyan("%s", rewritten)
		}
	},
}

// importReady loads every finished report in pending into sink and returns the
// imported paths and those still waiting. nikto writes its report while the scan
// runs, so a missing or not yet well-formed file stays pending. A complete file that
// is not a nikto report is dropped.
func importReady(ctx context.Context, p *plugin.Nikto, pending []string, sink model.Sink, log logrus.FieldLogger) (done, left []string) {
	for _, path := range pending {
		entry := log.WithField("file", path)
		err := p.ImportFile(ctx, path, sink)
		switch {
		case err == nil:
			done = append(done, path)
		case errors.Is(err, os.ErrNotExist), errors.Is(err, nikto.ErrMalformedReport):
			entry.WithError(err).Debug("Report not finished yet")
			left = append(left, path)
		case errors.Is(err, nikto.ErrStructuralMismatch):
			entry.WithError(err).Warn("Dropping file that is not a nikto report")
		default:
			entry.WithError(err).Error("Import failed")
			left = append(left, path)
		}
	}
	return done, left
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
