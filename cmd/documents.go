package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Browse and organize documents",
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents, optionally filtered by collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		collectionID, _ := cmd.Flags().GetString("collection")
		client := buildClient()
		documents, err := client.ListDocuments(context.Background(), collectionID)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCOLLECTION\tCHUNKS")
		for _, d := range documents {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", d.ID, d.Title, d.CollectionID, d.ChunkCount)
		}
		return w.Flush()
	},
}

var documentsMoveCmd = &cobra.Command{
	Use:   "move <document-id> <collection-id>",
	Short: "Move a document into a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := buildClient()
		if err := client.MoveDocument(context.Background(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Moved document %s to collection %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	documentsListCmd.Flags().String("collection", "", "filter by collection id")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsMoveCmd)
	rootCmd.AddCommand(documentsCmd)
}
