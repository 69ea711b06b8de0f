package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/datadiver/diver/pkg/api"
	"github.com/datadiver/diver/pkg/config"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Manage document collections",
}

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := buildClient()
		collections, err := client.ListCollections(context.Background())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDOCUMENTS\tDESCRIPTION")
		for _, c := range collections {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", c.ID, c.Name, c.DocumentCount, c.Description)
		}
		return w.Flush()
	},
}

var collectionsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		client := buildClient()
		created, err := client.CreateCollection(context.Background(), api.CreateCollectionRequest{
			Name:        args[0],
			Description: description,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created collection %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var collectionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := buildClient()
		if err := client.DeleteCollection(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted collection %s\n", args[0])
		return nil
	},
}

func buildClient() *api.Client {
	settings := config.Get()
	return api.NewClientWithTimeout(settings.API.URL, settings.API.Timeout)
}

func init() {
	collectionsCreateCmd.Flags().String("description", "", "collection description")

	collectionsCmd.AddCommand(collectionsListCmd)
	collectionsCmd.AddCommand(collectionsCreateCmd)
	collectionsCmd.AddCommand(collectionsDeleteCmd)
	rootCmd.AddCommand(collectionsCmd)
}
