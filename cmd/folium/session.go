package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored documents",
	Long:  `List and remove documents kept by the configured store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all stored documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		ids, err := app.Manager.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("error listing documents: %w", err)
		}
		if len(ids) == 0 {
			fmt.Println("No stored documents found.")
			return nil
		}

		fmt.Println("Stored Documents:")
		for _, id := range ids {
			fmt.Println("- " + id)
		}
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <document-id>...",
	Short: "Remove one or more documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		var errs []error
		for _, id := range args {
			if err := app.Manager.Delete(cmd.Context(), id); err != nil {
				errs = append(errs, fmt.Errorf("error removing '%s': %w", id, err))
				continue
			}
			fmt.Printf("Removed document '%s'\n", id)
		}
		return errors.Join(errs...)
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}
