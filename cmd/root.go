package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/datadiver/diver/pkg/api"
	"github.com/datadiver/diver/pkg/chat"
	"github.com/datadiver/diver/pkg/config"
	"github.com/datadiver/diver/pkg/headless"
	"github.com/datadiver/diver/pkg/logger"
	"github.com/datadiver/diver/pkg/tui"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "diver",
	Short: "Terminal client for the DataDiver knowledge backend",
	Long: `diver is a terminal client for a DataDiver backend: chat with your
document corpus, browse collections and documents, and draft proposals with
retrieval-grounded generation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, manager := buildChat()

		if prompt := viper.GetString("prompt"); prompt != "" {
			return headless.RunHeadless(manager, prompt)
		}
		return tui.StartApp(client, manager)
	},
}

// buildChat wires the API client and chat manager from config.
func buildChat() (*api.Client, *chat.Manager) {
	settings := config.Get()
	client := api.NewClientWithTimeout(settings.API.URL, settings.API.Timeout)
	streamer := chat.NewStreamingClient(client, settings.Chat.SearchType)
	return client, chat.NewManager(streamer)
}

func Execute() {
	defer logger.Close()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is .diver/settings.yaml)")

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().String("api-url", api.DefaultBaseURL, "DataDiver backend base URL")
	viper.BindPFlag("api.url", rootCmd.PersistentFlags().Lookup("api-url"))

	rootCmd.Flags().StringP("prompt", "p", "", "execute a prompt directly without entering the TUI")
	viper.BindPFlag("prompt", rootCmd.Flags().Lookup("prompt"))

	viper.SetDefault("api.url", api.DefaultBaseURL)
	viper.SetDefault("api.timeout", "30s")
	viper.SetDefault("api.connect_timeout", "10s")

	viper.SetDefault("chat.search_type", "hybrid")
	viper.SetDefault("chat.show_retrieval", true)
	viper.SetDefault("chat.system_greeting", "Ask anything about your documents.")

	viper.SetDefault("logging.file", "diver.log")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.max_size_mb", 10)
	viper.SetDefault("logging.max_backups", 3)
}

func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
}
