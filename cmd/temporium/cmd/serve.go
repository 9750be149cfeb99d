package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DrMaserLie/temporium/pkg/api"
	"github.com/DrMaserLie/temporium/pkg/config"
	"github.com/DrMaserLie/temporium/pkg/store"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server over the catalog store and the
snapshot subsystem. A configuration file is bootstrapped with a
generated API key on first run.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		var cfg *config.Config
		var err error
		if config.ConfigExists(configPath) {
			cfg, err = config.LoadConfig(configPath)
		} else {
			dataDir, _ := cmd.Flags().GetString("data-dir")
			cfg, err = config.BootstrapConfig(configPath, dataDir)
			if err == nil {
				fmt.Printf("Bootstrapped config at %s\n", configPath)
			}
		}
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		s, err := store.Open(store.Config{DataDir: cfg.DataDir})
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			return
		}
		defer s.Close()

		if err := s.EnsureAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
			fmt.Printf("Error bootstrapping admin: %v\n", err)
			return
		}

		serverConfig := api.ServerConfig{
			Port:   cfg.Port,
			Bind:   cfg.Bind,
			APIKey: cfg.API.Key,
		}
		if err := api.StartServer(s, serverConfig); err != nil {
			fmt.Printf("Server error: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("config", "", "Path to the configuration file")
}
