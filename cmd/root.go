package cmd

import (
	"github.com/maxkimambo/vetflow/internal/config"
	"github.com/maxkimambo/vetflow/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool
	verbose    bool
	jsonLogs   bool
	quiet      bool
	version    = "v0.1.0"

	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "vetflow",
		Short: "Run veterinary practice workflows from the command line",
		Long: `vetflow runs the practice's everyday workflows, such as checking a patient
out at the end of a visit, against a local object store.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Setup(verbose || debug, jsonLogs, quiet)

			var err error
			if configPath != "" {
				cfg, err = config.Load("", configPath)
			} else {
				cfg, err = config.LoadDefault()
			}
			if err != nil {
				return err
			}
			logger.Op.Debugf("Configuration: %+v", *cfg)
			return nil
		},
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.vetflow/config.yaml and .vetflow/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
}
