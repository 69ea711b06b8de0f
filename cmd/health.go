package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend availability",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := buildClient()
		status, err := client.CheckHealthWithTimeout(5 * time.Second)
		if err != nil {
			return err
		}

		if !status.Available {
			fmt.Printf("Backend %s is unreachable: %v\n", client.BaseURL(), status.Error)
			return fmt.Errorf("backend unavailable")
		}

		fmt.Printf("Backend %s is up (status: %s", client.BaseURL(), status.Status)
		if status.Version != "" {
			fmt.Printf(", version: %s", status.Version)
		}
		fmt.Println(")")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
