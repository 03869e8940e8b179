package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/folium/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <document-id>",
	Short: "Show a stored document",
	Long:  `Prints an outline of the document, rendered when stdout is a terminal, or its full state with --json.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		documentID := args[0]
		state, err := app.Manager.Load(cmd.Context(), documentID)
		if err != nil {
			return fmt.Errorf("error loading document '%s': %w", documentID, err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(state, "", "  ")
			if err != nil {
				return fmt.Errorf("error marshaling state: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}
		return tui.Print(os.Stdout, tui.Outline(documentID, state))
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("json", false, "Print the full state as JSON")
}
