package main

import (
	"fmt"
	"os"

	"github.com/aretw0/folium/internal/cli"
	"github.com/aretw0/folium/internal/presentation/tui"
	"github.com/aretw0/folium/internal/script"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Apply an action script to a document",
	Long: `Reads a YAML or JSON list of actions and applies it to a document,
starting from its stored state. Without --save the result is only printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := script.Load(args[0])
		if err != nil {
			return err
		}

		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		documentID, _ := cmd.Flags().GetString("document")
		save, _ := cmd.Flags().GetBool("save")

		state, err := cli.Replay(cmd.Context(), app, documentID, s, save)
		if err != nil {
			return err
		}
		if documentID == "" {
			documentID = s.Document
		}
		if save {
			fmt.Fprintf(os.Stderr, "Saved %d actions to '%s'\n", len(s.Actions), documentID)
		}
		return tui.Print(os.Stdout, tui.Outline(documentID, state))
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringP("document", "d", "", "Target document ID (defaults to the script's document)")
	replayCmd.Flags().Bool("save", false, "Store the resulting state")
}
