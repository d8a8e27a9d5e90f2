package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rostislav62/alppass/internal/api"
	"github.com/Rostislav62/alppass/internal/config"
	"github.com/Rostislav62/alppass/internal/session"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "alppass",
	Short: "Submit and manage mountain-pass records",
	Long: `alppass is a client for the AlpPass pereval catalogue. It lets you:
  - register and look up your account
  - submit new pass records with coordinates, difficulty and photos
  - browse submitted records
  - edit your own records while they are still pending review

Records and photos live on the remote backend; only your identity and UI
preferences are cached locally.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/alppass/config.toml)")
}

func initConfig() {
	configDir := ""
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir = filepath.Join(home, ".config", "alppass")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("api.base_url", api.DefaultBaseURL)
	viper.SetDefault("api.timeout_seconds", 30)
	if configDir != "" {
		viper.SetDefault("session.path", filepath.Join(configDir, "session.json"))
	}
	viper.SetDefault("geo.url", "")
	viper.SetDefault("ui.theme", "light")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newClient builds the backend client from the effective config
func newClient() *api.Client {
	return api.NewClient(config.GetBaseURL(), config.GetTimeout())
}

// sessionStore opens the local session file
func sessionStore() *session.Store {
	return session.NewStore(config.GetSessionPath())
}

// currentUser loads the logged-in identity
func currentUser() (*session.Session, error) {
	return sessionStore().Load()
}
