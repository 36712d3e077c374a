package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/augur/internal/i18n"
	"github.com/mark3labs/augur/internal/wizardmcp"
	"github.com/spf13/cobra"
)

var mcpFlags struct {
	addr string
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the wizards to AI agents over MCP",
	Long: `Serve every wizard over the Model Context Protocol (streamable HTTP).

An agent starts a wizard session, sets fields, moves between steps and
submits, receiving the same localized validation errors a person would see
in the terminal UI. Submissions are stored unless --no-persist is set.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpFlags.addr, "addr", "127.0.0.1:8765", "Listen address (port 0 picks a free port)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fns, cleanup, err := submitCallbacks(ctx, "mcp")
	if err != nil {
		return err
	}
	defer cleanup()

	opts := []wizardmcp.Option{wizardmcp.WithLocale(cfg.Locale)}
	for _, fn := range fns {
		opts = append(opts, wizardmcp.WithOnComplete(fn))
	}
	srv := wizardmcp.New(i18n.Default(), opts...)

	if _, err := srv.Start(ctx, mcpFlags.addr); err != nil {
		return err
	}
	fmt.Printf("MCP server listening at %s\n", srv.URL())
	fmt.Println("Press Ctrl+C to stop.")

	<-ctx.Done()
	fmt.Println("\nShutting down gracefully...")
	return srv.Stop()
}
