package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/saycalc/internal/app"
	"github.com/doeshing/saycalc/internal/domain"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check config, history store, math engine and speech",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctorDiagnostics(cmd, cmd.OutOrStdout(), container)
		},
	}
}

func runDoctorDiagnostics(cmd *cobra.Command, out io.Writer, container *app.Container) error {
	if container.DoctorService == nil {
		return errors.New(ErrDoctorServiceUnavailable)
	}

	report, err := container.DoctorService.Run(cmd.Context())

	// Display report even if there were errors
	displayDoctorReport(out, report)

	if err != nil {
		return fmt.Errorf("diagnostics completed with errors: %w", err)
	}
	return nil
}

func displayDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		label := fmt.Sprintf("[%s]", strings.ToUpper(string(check.Status)))
		if style, ok := statusStyles[check.Status]; ok {
			label = style.Render(label)
		}
		fmt.Fprintf(out, "%s %s - %s\n", label, check.Name, check.Details)
		if check.Hint != "" && check.Status != domain.HealthOK {
			fmt.Fprintf(out, "       %s\n", mutedStyle.Render("fix: "+check.Hint))
		}
	}
	if len(report.Checks) > 0 {
		fmt.Fprintf(out, "Overall: %s\n", report.Worst())
	}
}
