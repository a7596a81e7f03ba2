package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/saycalc/internal/app"
	"github.com/doeshing/saycalc/internal/domain"
	"github.com/doeshing/saycalc/internal/infrastructure/cli/helpers"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect calculation history",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
		newHistoryRetainCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent calculations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = displayLimit(cmd.Context(), container)
			}
			return listHistoryEntries(cmd.OutOrStdout(), container, limit, "")
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max entries to show (default from config)")
	return cmd
}

func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var query string
	var searchLimit int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search inputs and results for a keyword",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" && len(args) > 0 {
				query = args[0]
			}
			if query == "" {
				return errors.New(ErrQueryRequired)
			}
			return listHistoryEntries(cmd.OutOrStdout(), container, searchLimit, query)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search keyword")
	cmd.Flags().IntVar(&searchLimit, "limit", DefaultHistorySearchLimit, "Limit search results")
	return cmd
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored calculations",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := container.HistoryStore
			if store == nil {
				return errors.New(ErrHistoryStoreUnavailable)
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}

func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := container.HistoryStore
			if store == nil {
				return errors.New(ErrHistoryStoreUnavailable)
			}
			if err := store.ExportJSON(args[0]); err != nil {
				return fmt.Errorf("failed to export history to %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported history to %s\n", args[0])
			return nil
		},
	}
}

func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show domain mix, failure rate and frequent inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistoryStats(cmd.OutOrStdout(), container)
		},
	}
}

func newHistoryRetainCommand(container *app.Container) *cobra.Command {
	var retainDays int

	cmd := &cobra.Command{
		Use:   "retain",
		Short: "Prune history older than N days and update retention policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if retainDays <= 0 {
				return errors.New(ErrInvalidRetainDays)
			}
			return updateHistoryRetention(cmd.Context(), cmd.OutOrStdout(), container, retainDays)
		},
	}

	cmd.Flags().IntVar(&retainDays, "days", DefaultHistoryRetainDays, "Days to retain history")
	return cmd
}

// displayLimit reads history.display_limit, falling back to the built-in default.
func displayLimit(ctx context.Context, container *app.Container) int {
	if container.ConfigProvider == nil {
		return DefaultHistoryLimit
	}
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return DefaultHistoryLimit
	}
	return cfg.GetDisplayLimit()
}

func listHistoryEntries(out io.Writer, container *app.Container, limit int, query string) error {
	store := container.HistoryStore
	if store == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}

	records, err := store.Records(limit, query)
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}
	if len(records) == 0 && query == "" {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	for _, rec := range records {
		source := "voice"
		if rec.IsManual {
			source = "manual"
		}
		fmt.Fprintf(out, "%s | %-10s | %-6s | %s -> %s\n",
			mutedStyle.Render(humanize.Time(rec.CreatedAt)),
			displayDomain(rec.Domain),
			source,
			rec.Input,
			rec.Result)
	}
	return nil
}

func showHistoryStats(out io.Writer, container *app.Container) error {
	store := container.HistoryStore
	if store == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}

	records, err := store.Records(MaxHistoryAnalysisRecords, "")
	if err != nil {
		return fmt.Errorf("failed to retrieve history for analysis: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	stats := helpers.AnalyzeRecords(records)
	fmt.Fprintf(out, "Entries analyzed: %s\n", humanize.Comma(int64(stats.Total)))
	fmt.Fprintf(out, "Manual: %d  Voice: %d\n", stats.Manual, stats.Voice)
	fmt.Fprintf(out, "Failure rate: %.1f%%\n", helpers.Percentage(stats.Failed, stats.Total))

	fmt.Fprintln(out, headerStyle.Render("Domains"))
	for _, d := range domain.Domains {
		fmt.Fprintf(out, "  %s: %d\n", d, stats.ByDomain[d])
	}

	if len(stats.ByStage) > 0 {
		fmt.Fprintln(out, headerStyle.Render("Evaluator stages"))
		stages := make([]string, 0, len(stats.ByStage))
		for stage := range stats.ByStage {
			stages = append(stages, string(stage))
		}
		sort.Strings(stages)
		for _, stage := range stages {
			fmt.Fprintf(out, "  %s: %d\n", stage, stats.ByStage[domain.Stage(stage)])
		}
	}

	fmt.Fprintln(out, headerStyle.Render("Top inputs"))
	for _, stat := range helpers.CalculateTopInputs(records, 5) {
		fmt.Fprintf(out, "  %s (%d)\n", stat.Input, stat.Count)
	}

	if oldest := records[len(records)-1]; !oldest.CreatedAt.IsZero() {
		fmt.Fprintf(out, "Oldest entry: %s\n", humanize.Time(oldest.CreatedAt))
	}
	return nil
}

func updateHistoryRetention(ctx context.Context, out io.Writer, container *app.Container, days int) error {
	store := container.HistoryStore
	if store == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}

	if err := store.PruneOlderThan(days); err != nil {
		return fmt.Errorf("failed to prune old history: %w", err)
	}

	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.History.RetentionDays = days

	if err := helpers.SaveConfigWithValidation(container, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "Retained last %d days of history.\n", days)
	return nil
}

func displayDomain(d domain.Domain) string {
	if d == "" {
		return "-"
	}
	return string(d)
}
