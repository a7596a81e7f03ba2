package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/saycalc/internal/app"
	"github.com/doeshing/saycalc/internal/domain"
	"github.com/doeshing/saycalc/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
}

// calcFlags are shared by the root command and calc.
type calcFlags struct {
	mode  string
	speak bool
	voice bool
	stage bool
	copy  bool
}

func (f *calcFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "Force a domain: auto|scientific|area|money (default from config)")
	cmd.Flags().BoolVarP(&f.speak, "speak", "s", false, "Speak the result aloud")
	cmd.Flags().BoolVar(&f.voice, "voice", false, "Treat input as a speech transcript")
	cmd.Flags().BoolVar(&f.stage, "stage", false, "Show domain, evaluation stage and expression")
	cmd.Flags().BoolVarP(&f.copy, "copy", "c", false, "Copy the result to the clipboard")
}

// NewRootCmd wires the cobra root command. The container is built once flags
// are parsed, so --config and --verbose take effect.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container := &app.Container{}
	var flags calcFlags

	root := &cobra.Command{
		Use:   "saycalc [input]",
		Short: "SAYCALC - natural language calculator",
		Long: "SAYCALC evaluates spoken or typed calculations: arithmetic and scientific\n" +
			"functions, shape areas, currency conversion and simple interest.",
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := app.BuildContainer(cmd.Context(), opts.Verbose, opts.ConfigPath)
			if err != nil {
				return err
			}
			*container = *built
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return container.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runCalculation(cmd, container, flags, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetContext(ctx)
	flags.bind(root)
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Config file path (.yaml or .toml)")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "Enable debug logging")

	root.AddCommand(newCalcCommand(container))
	root.AddCommand(newListenCommand(container))
	root.AddCommand(commands.NewRatesCommand(container))
	root.AddCommand(commands.NewMCPCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}

func newCalcCommand(container *app.Container) *cobra.Command {
	var flags calcFlags

	cmd := &cobra.Command{
		Use:   "calc [input]",
		Short: "Evaluate one calculation",
		Example: `  saycalc calc "square root of 16"
  saycalc calc --mode area "circle with radius 3"
  saycalc calc "convert 100 dollars to euros"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculation(cmd, container, flags, args)
		},
	}
	flags.bind(cmd)
	return cmd
}

func runCalculation(cmd *cobra.Command, container *app.Container, flags calcFlags, args []string) error {
	if container.CalculateService == nil {
		return errors.New(commands.ErrCalculateServiceUnavailable)
	}
	hint, err := domain.ParseDomain(flags.mode)
	if err != nil {
		return err
	}

	resp, err := container.CalculateService.Run(domain.CalculationRequest{
		Context:  cmd.Context(),
		Input:    strings.Join(args, " "),
		Hint:     hint,
		IsManual: !flags.voice,
		Speak:    flags.speak,
	})
	if err != nil {
		return err
	}
	RenderResponse(cmd.OutOrStdout(), resp, RenderOptions{ShowStage: flags.stage, ShowSpeakable: flags.stage})

	if flags.copy && !resp.Failed() {
		if err := NewClipboard().Copy(cmd.Context(), resp.ResultText); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: copy failed:", err)
		}
	}
	return nil
}
