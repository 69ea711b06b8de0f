package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/datadiver/diver/pkg/api"
	"github.com/datadiver/diver/pkg/chat"
	"github.com/datadiver/diver/pkg/config"
	"github.com/datadiver/diver/pkg/proposal"
	"github.com/datadiver/diver/pkg/sse"
)

const timeRound = 10 * time.Millisecond

var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "Manage proposal drafts",
}

var proposalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List proposals",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := buildClient()
		proposals, err := client.ListProposals(context.Background())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCLIENT\tSTATUS\tSECTIONS")
		for _, p := range proposals {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Title, p.ClientName, p.Status, len(p.Sections))
		}
		return w.Flush()
	},
}

var proposalsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a proposal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clientName, _ := cmd.Flags().GetString("client")
		client := buildClient()
		created, err := client.CreateProposal(context.Background(), api.CreateProposalRequest{
			Title:      args[0],
			ClientName: clientName,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created proposal %s (%s)\n", created.Title, created.ID)
		return nil
	},
}

var proposalsGenerateCmd = &cobra.Command{
	Use:   "generate <proposal-id> <section-title>",
	Short: "Stream a generated draft for one proposal section",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		instructions, _ := cmd.Flags().GetString("instructions")
		contextMode, _ := cmd.Flags().GetString("context")
		collections, _ := cmd.Flags().GetStringSlice("collections")
		documents, _ := cmd.Flags().GetStringSlice("documents")

		settings := config.Get()
		generator := proposal.NewGenerator(buildClient(), proposal.NewStore())

		req := proposal.GenerateRequest{
			SectionTitle:        args[1],
			SectionInstructions: instructions,
			Metadata: proposal.Metadata{
				ContextMode:         contextMode,
				SelectedCollections: collections,
				SelectedDocuments:   documents,
			},
			SearchType: settings.Chat.SearchType,
		}

		sec, err := generator.GenerateSection(context.Background(), args[0], req, func(s *proposal.Section, ev sse.Event) {
			switch {
			case ev.IsContent():
				fmt.Print(ev.Text())
			case ev.IsRetrieval() && settings.Chat.ShowRetrieval:
				switch ev.Type {
				case sse.TypeRetrievalSummary:
					fmt.Printf("\n[retrieval] %d results for %q\n", ev.Results, ev.Query)
				default:
					fmt.Printf("\n[retrieval] %s %s\n", ev.Step, ev.Message)
				}
			}
		})
		if err != nil {
			fmt.Println(sec.Content)
			return err
		}

		fmt.Println()
		if len(sec.Citations) > 0 {
			fmt.Println("\nCitations:")
			for _, src := range sec.Citations {
				name := src.DocumentTitle
				if name == "" {
					name = src.Filename
				}
				fmt.Printf("  - %s (%s)\n", name, chat.MatchLabel(src.RelevanceScore))
			}
		}
		fmt.Printf("\n[%d words in %s]\n", sec.Meta.WordCount, sec.Meta.ProcessingTime.Round(timeRound))
		return nil
	},
}

var proposalsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a proposal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := buildClient()
		if err := client.DeleteProposal(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted proposal %s\n", args[0])
		return nil
	},
}

func init() {
	proposalsCreateCmd.Flags().String("client", "", "client name")

	proposalsGenerateCmd.Flags().String("instructions", "", "extra instructions for the section")
	proposalsGenerateCmd.Flags().String("context", proposal.ContextModeAll, "retrieval scope: all, collections, or documents")
	proposalsGenerateCmd.Flags().StringSlice("collections", nil, "collection ids to retrieve from")
	proposalsGenerateCmd.Flags().StringSlice("documents", nil, "document ids to retrieve from")

	proposalsCmd.AddCommand(proposalsListCmd)
	proposalsCmd.AddCommand(proposalsCreateCmd)
	proposalsCmd.AddCommand(proposalsGenerateCmd)
	proposalsCmd.AddCommand(proposalsDeleteCmd)
	rootCmd.AddCommand(proposalsCmd)
}
