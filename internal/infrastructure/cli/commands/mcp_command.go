package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/doeshing/saycalc/internal/app"
	"github.com/doeshing/saycalc/internal/infrastructure/mcpserver"
	"github.com/doeshing/saycalc/internal/version"
)

// NewMCPCommand creates the mcp command
func NewMCPCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the calculator as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.CalculateService == nil {
				return errors.New(ErrCalculateServiceUnavailable)
			}
			handlers := &mcpserver.Handlers{Runner: container.CalculateService}
			if container.Interpreter != nil {
				handlers.Rates = container.Interpreter.Rates
			}
			return mcpserver.Serve(mcpserver.New(handlers, version.Version))
		},
	}
}
