package cmd

import (
	"EmojiFM/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the EmojiFM HTTP server",
	Long:  `Start the EmojiFM HTTP server, serving the recommendation API and the emoji mood / user CRUD endpoints`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
