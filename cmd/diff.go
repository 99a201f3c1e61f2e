package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/user/nikto-adapter/pkg/model"
)

var diffCmd = &cobra.Command{
	Use:   "diff <baseline.json> <current.json>",
	Short: "Compare two saved snapshots",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		base := model.NewStore()
		if err := base.LoadSnapshot(args[0]); err != nil {
			return fmt.Errorf("loading %s: %w", args[0], err)
		}
		current := model.NewStore()
		if err := current.LoadSnapshot(args[1]); err != nil {
			return fmt.Errorf("loading %s: %w", args[1], err)
		}
		printDiff(current.CompareSnapshot(base))
		return nil
	},
}

func printDiff(d model.SnapshotDiff) {
	fmt.Println("Snapshot comparison")
	fmt.Println("--------------------------------------------------")
	if len(d.New) == 0 && len(d.Fixed) == 0 {
		fmt.Printf("No changes (%d unchanged findings)\n", len(d.Unchanged))
		return
	}
	for _, r := range d.New {
		color.Red("[NEW]   %s", describe(r))
	}
	for _, r := range d.Fixed {
		color.Green("[FIXED] %s", describe(r))
	}
	fmt.Printf("\n%d new, %d fixed, %d unchanged\n", len(d.New), len(d.Fixed), len(d.Unchanged))
}

func describe(r model.VulnRecord) string {
	target := r.HostIP
	if len(r.Ports) > 0 {
		target += ":" + strings.Join(r.Ports, ",")
	}
	return fmt.Sprintf("%s %s %s %s", target, r.Method, r.Path, r.Name)
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
