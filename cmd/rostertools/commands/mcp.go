package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/erraggy/rostertools/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: rostertools mcp\n\n")
		Writef(fs.Output(), "Run the MCP (Model Context Protocol) server on stdio. Exposes roster\n")
		Writef(fs.Output(), "tools (check_duplicates, profile_fields, inspect_roster, preview_dedupe)\n")
		Writef(fs.Output(), "to MCP clients. Configure via ROSTERTOOLS_MCP_* environment variables.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExample client configuration (Claude Desktop):\n")
		Writef(fs.Output(), `  {"mcpServers": {"rostertools": {"command": "rostertools", "args": ["mcp"]}}}`+"\n")
	}

	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
