package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/user/nikto-adapter/pkg/model"
)

var parseCmd = &cobra.Command{
	Use:   "parse <report.xml>...",
	Short: "Import nikto XML reports and print the resulting host model",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, p, err := setup()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		store := model.NewStore()
		for _, path := range args {
			log.WithField("file", path).Debug("Importing report")
			if err := p.ParseOutputFile(ctx, path, store); err != nil {
				return fmt.Errorf("importing %s: %w", path, err)
			}
		}

		fmt.Print(store.Report())
		sum := store.Summary()
		color.New(color.Bold).Printf("%d hosts, %d services, %d notes, %d web vulnerabilities\n",
			sum.Hosts, sum.Services, sum.Notes, sum.Vulns)

		if baseline, _ := cmd.Flags().GetString("snapshot"); baseline != "" {
			base := model.NewStore()
			if err := base.LoadSnapshot(baseline); err != nil {
				return fmt.Errorf("loading snapshot: %w", err)
			}
			printDiff(store.CompareSnapshot(base))
		}

		if out, _ := cmd.Flags().GetString("save"); out != "" {
			if err := store.SaveSnapshot(out); err != nil {
				return fmt.Errorf("saving snapshot: %w", err)
			}
			fmt.Printf("Snapshot saved to %s\n", out)
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().String("snapshot", "", "Compare the imported findings against this snapshot")
	parseCmd.Flags().String("save", "", "Save the imported host model as a snapshot")
	rootCmd.AddCommand(parseCmd)
}
