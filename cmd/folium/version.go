package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/folium"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of folium",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("folium version %s\n", strings.TrimSpace(folium.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
