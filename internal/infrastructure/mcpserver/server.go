// Package mcpserver exposes the calculator as Model Context Protocol tools
// over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/doeshing/saycalc/internal/calc"
	"github.com/doeshing/saycalc/internal/domain"
)

// Runner executes one calculation request.
type Runner interface {
	Run(domain.CalculationRequest) (domain.CalculationResponse, error)
}

// Handlers holds the tool implementations.
type Handlers struct {
	Runner Runner
	Rates  *calc.RateTable
}

// New builds an MCP server with the calculate and rates tools registered.
func New(h *Handlers, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"saycalc",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	calculateTool := mcp.NewTool("calculate",
		mcp.WithDescription("Evaluate a natural-language or symbolic calculation: arithmetic and scientific functions, shape areas, currency conversion and simple interest"),
		mcp.WithString("input",
			mcp.Required(),
			mcp.Description(`The calculation, e.g. "square root of 16" or "convert 100 dollars to euros"`),
		),
		mcp.WithString("mode",
			mcp.Description("Optional domain: auto, scientific, area or money"),
		),
		mcp.WithBoolean("voice",
			mcp.Description("Treat input as a speech transcript (affects error wording)"),
		),
	)
	s.AddTool(calculateTool, h.Calculate)

	ratesTool := mcp.NewTool("rates",
		mcp.WithDescription("List the fixed currency conversion table"),
	)
	s.AddTool(ratesTool, h.ListRates)

	return s
}

// Serve blocks serving s over stdin/stdout.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// Calculate handles the calculate tool.
func (h *Handlers) Calculate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	input, ok := args["input"].(string)
	if !ok || strings.TrimSpace(input) == "" {
		return mcp.NewToolResultError("input is required"), nil
	}

	var hint *domain.Domain
	if mode, ok := args["mode"].(string); ok {
		parsed, err := domain.ParseDomain(mode)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		hint = parsed
	}
	voice, _ := args["voice"].(bool)

	resp, err := h.Runner.Run(domain.CalculationRequest{
		Context:  ctx,
		Input:    input,
		Hint:     hint,
		IsManual: !voice,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running calculation: %v", err)), nil
	}
	if resp.Failed() {
		return mcp.NewToolResultError(resp.ResultText), nil
	}
	return mcp.NewToolResultText(resp.ResultText), nil
}

// ListRates handles the rates tool.
func (h *Handlers) ListRates(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rates := h.Rates
	if rates == nil {
		rates = calc.DefaultRates()
	}
	var b strings.Builder
	for _, pair := range rates.Pairs() {
		rate, _ := rates.Lookup(pair.From, pair.To)
		fmt.Fprintf(&b, "%s %s\n", pair, calc.FormatNumber(rate.Multiplier))
	}
	return mcp.NewToolResultText(strings.TrimRight(b.String(), "\n")), nil
}
