package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/locaudit/locaudit/internal/adapters/inbound/mcp"
)

func newMCPCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the locaudit MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(s))
	return cmd
}

func newMCPServeCmd(s *settings) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the locaudit MCP server (stdio)",
		Long: "Start the locaudit MCP server using stdio transport. This lets coding assistants audit pages, " +
			"find the source of overflowing strings and map translations back to English.",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(projectPath)
			if err != nil {
				return err
			}
			b := newBrowser(s, p.cfg)
			defer b.Close()

			srv := mcpadapter.NewServer(p.path, version, b)
			return server.ServeStdio(srv)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project path (defaults to current working directory)")
	return cmd
}
