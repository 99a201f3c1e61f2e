package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/user/nikto-adapter/pkg/config"
	"github.com/user/nikto-adapter/pkg/logging"
	"github.com/user/nikto-adapter/pkg/plugin"
)

var rootCmd = &cobra.Command{
	Use:   "nikto-adapter",
	Short: "Run nikto with XML output and import its reports",
	Long: `nikto-adapter rewrites nikto command lines so every scan writes an XML
report to a unique file, and turns those reports into hosts, services, notes
and web vulnerabilities.`,
	SilenceUsage: true,
}

var (
	DebugMode  bool
	ConfigPath string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&ConfigPath, "config", "", "Config file (default ~/.nikto-adapter/config.yaml)")
}

// loadConfig reads the config file and applies --debug.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(ConfigPath)
	if err != nil {
		return nil, err
	}
	if DebugMode {
		cfg.Log.Level = logrus.DebugLevel.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads the config and builds the logger and plugin shared by the commands.
func setup() (*config.Config, *logrus.Logger, *plugin.Nikto, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	log := logging.New(cfg.Log)
	p, err := plugin.NewNikto(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, p, nil
}
