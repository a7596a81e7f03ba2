package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/saycalc/internal/app"
	"github.com/doeshing/saycalc/internal/calc"
)

// NewRatesCommand creates the rates command
func NewRatesCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Show the fixed currency conversion table",
		RunE: func(cmd *cobra.Command, args []string) error {
			rates := calc.DefaultRates()
			if container.Interpreter != nil && container.Interpreter.Rates != nil {
				rates = container.Interpreter.Rates
			}
			displayRates(cmd.OutOrStdout(), rates)
			return nil
		},
	}
}

func displayRates(out io.Writer, rates *calc.RateTable) {
	fmt.Fprintln(out, headerStyle.Render("Currencies"))
	for _, cur := range rates.Currencies() {
		fmt.Fprintf(out, "  %s  %s\n", cur.Code, mutedStyle.Render(cur.Spoken))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("Rates"))
	for _, pair := range rates.Pairs() {
		rate, _ := rates.Lookup(pair.From, pair.To)
		fmt.Fprintf(out, "  1 %s = %s %s\n", pair.From, calc.FormatNumber(rate.Multiplier), pair.To)
	}
}
