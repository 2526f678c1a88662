package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CSU-ITMO-2025-2/team7/internal/api"
	"github.com/CSU-ITMO-2025-2/team7/internal/config"
	"github.com/CSU-ITMO-2025-2/team7/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "trainctl",
	Short: "Model training platform CLI",
	Long: `A command line client for the model training platform.
Supports account management, dataset uploads, run submission and
artifact downloads.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("control-api", "", "Control API base URL (overrides TRAINCTL_CONTROL_API_URL)")
	rootCmd.PersistentFlags().String("artifacts-api", "", "Artifacts API base URL (overrides TRAINCTL_ARTIFACTS_API_URL)")
	rootCmd.PersistentFlags().String("models-api", "", "Model catalog base URL (defaults to the control API)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	viper.BindPFlag("control_api_url", rootCmd.PersistentFlags().Lookup("control-api"))
	viper.BindPFlag("artifacts_api_url", rootCmd.PersistentFlags().Lookup("artifacts-api"))
	viper.BindPFlag("models_api_url", rootCmd.PersistentFlags().Lookup("models-api"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	// Environment variables
	viper.SetEnvPrefix("TRAINCTL")
	viper.AutomaticEnv()

	// Set defaults for the local docker-compose deployment
	viper.SetDefault("control_api_url", "http://localhost:8000")
	viper.SetDefault("artifacts_api_url", "http://localhost:8001")

	if viper.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// newClient wires config, session store and gateway client together.
func newClient() (api.Client, session.Store, error) {
	cfg := config.New()
	path, err := cfg.SessionPath()
	if err != nil {
		return nil, nil, err
	}
	store := session.NewFileStore(path)
	client, err := api.New(cfg, store)
	if err != nil {
		return nil, nil, err
	}
	return client, store, nil
}

// requireAuth gates protected commands on the stored session before any
// network call is made.
func requireAuth(store session.Store) error {
	if !store.IsAuthenticated() {
		return fmt.Errorf("authorization required: run 'trainctl auth login' first")
	}
	return nil
}
