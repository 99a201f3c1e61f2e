package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/nikto-adapter/pkg/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Run: func(cmd *cobra.Command, args []string) {
		scanner := bufio.NewScanner(os.Stdin)
		fmt.Println("Welcome to the nikto-adapter Setup Wizard")
		fmt.Println("-----------------------------------------")

		cfg, err := config.LoadConfig(ConfigPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		ask := func(step, prompt, current string) string {
			fmt.Printf("\nStep %s: %s [%s]\n", step, prompt, current)
			fmt.Print("> ")
			if !scanner.Scan() {
				return current
			}
			if v := strings.TrimSpace(scanner.Text()); v != "" {
				return v
			}
			return current
		}

		cfg.Workspace = ask("1", "Workspace name", cfg.Workspace)
		cfg.DataDir = ask("2", "Directory for nikto reports", cfg.DataDir)
		cfg.Log.Level = ask("3", "Log level (debug, info, warn, error)", cfg.Log.Level)
		cfg.Log.File = ask("4", "Log file (empty for stderr only)", cfg.Log.File)

		if err := cfg.Validate(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			fmt.Printf("Error creating data dir: %v\n", err)
			return
		}

		fmt.Println("\nSaving Configuration...")
		if err := config.SaveConfig(ConfigPath, cfg); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			return
		}

		fmt.Println("-----------------------------------------")
		fmt.Println("Setup Complete!")
		fmt.Printf("Workspace: %s\n", cfg.Workspace)
		fmt.Printf("Data dir:  %s\n", cfg.DataDir)
		fmt.Println("You can now run 'nikto-adapter interactive'")
	},
}

func init() {
	configCmd.AddCommand(setupCmd)
}
