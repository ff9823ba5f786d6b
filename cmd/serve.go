package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpserver "github.com/Shafnaa/scrapping-tokopedia-review/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	harvester, client, err := setupHarvester(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting review harvester MCP server on stdio...")

	return mcpserver.Serve(mcpserver.Deps{Harvester: harvester, Client: client})
}
