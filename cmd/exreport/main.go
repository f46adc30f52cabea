// Package main provides the CLI entry point for exreport-go.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ukaji3/exreport-go/pkg/exreport"
	"github.com/ukaji3/exreport-go/pkg/exreport/input"
	"github.com/ukaji3/exreport-go/pkg/exreport/models"
	"github.com/ukaji3/exreport-go/pkg/exreport/output"
)

type globalFlags struct {
	verbose bool
	quiet   bool
}

type inputFlags struct {
	encoding    string
	format      string
	sheetName   string
	orientation string
	noAutoFit   bool
	noPrintArea bool
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:   "exreport",
		Short: "Render JSON or YAML data as Excel reports",
		Long: `exreport-go lays out tables from JSON or YAML documents onto
worksheets and writes them as an xlsx workbook.`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log layout decisions")
	rootCmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "Only log errors")

	rootCmd.AddCommand(newRenderCmd(g), newPlanCmd(g), newInspectCmd())
	return rootCmd
}

func newLogger(w io.Writer, g *globalFlags) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case g.quiet:
		level = zerolog.ErrorLevel
	case g.verbose:
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(level).With().Timestamp().Logger()
}

func addInputFlags(fs *pflag.FlagSet, f *inputFlags) {
	fs.StringVar(&f.encoding, "encoding", "", "Input character encoding (default: UTF-8)")
	fs.StringVar(&f.format, "format", "", "Input format: json or yaml (default: from extension or content)")
	fs.StringVar(&f.sheetName, "sheet-name", exreport.DefaultSheetName, "Sheet name for array documents")
	fs.StringVar(&f.orientation, "orientation", "", "Default table orientation: horizontal or vertical")
	fs.BoolVar(&f.noAutoFit, "no-autofit", false, "Skip column autofit")
	fs.BoolVar(&f.noPrintArea, "no-print-area", false, "Skip setting the print area")
}

func (f *inputFlags) options(logger *zerolog.Logger) (exreport.Options, error) {
	opts := exreport.DefaultOptions()
	opts.SheetName = f.sheetName
	opts.Logger = logger
	if f.orientation != "" {
		o, err := models.ParseOrientation(f.orientation)
		if err != nil {
			return opts, err
		}
		opts.Orientation = o
	}
	if f.noAutoFit {
		off := false
		opts.AutoFit = &off
	}
	if f.noPrintArea {
		off := false
		opts.PrintArea = &off
	}
	return opts, nil
}

func (f *inputFlags) load(path string, opts exreport.Options) (*models.Workbook, error) {
	format := input.Format(f.format)
	switch format {
	case input.FormatAuto, input.FormatJSON, input.FormatYAML:
	default:
		return nil, fmt.Errorf("invalid format: %s (must be json or yaml)", f.format)
	}
	doc, err := input.Load(path, input.Options{Encoding: f.encoding, Format: format})
	if err != nil {
		return nil, err
	}
	return doc.Resolve(opts)
}

func newRenderCmd(g *globalFlags) *cobra.Command {
	f := &inputFlags{}
	var outputPath string
	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render a document to an xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), g)
			opts, err := f.options(&logger)
			if err != nil {
				return err
			}
			wb, err := f.load(args[0], opts)
			if err != nil {
				return err
			}
			if outputPath == "" || outputPath == input.Stdin {
				return exreport.RenderTo(wb, cmd.OutOrStdout(), opts)
			}
			if err := exreport.RenderFile(wb, outputPath, opts); err != nil {
				return fmt.Errorf("render failed: %w", err)
			}
			logger.Info().Str("path", outputPath).Msg("workbook written")
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output xlsx path (default: stdout)")
	addInputFlags(cmd.Flags(), f)
	return cmd
}

func newPlanCmd(g *globalFlags) *cobra.Command {
	f := &inputFlags{}
	var (
		pretty bool
		format string
	)
	cmd := &cobra.Command{
		Use:   "plan [input]",
		Short: "Print the computed layout without writing a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), g)
			opts, err := f.options(&logger)
			if err != nil {
				return err
			}
			wb, err := f.load(args[0], opts)
			if err != nil {
				return err
			}
			plan, err := exreport.Plan(wb, opts)
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), plan, out, pretty)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&format, "output-format", string(output.FormatJSON), "Output format: json or yaml")
	addInputFlags(cmd.Flags(), f)
	return cmd
}

func newInspectCmd() *cobra.Command {
	var (
		pretty bool
		format string
	)
	cmd := &cobra.Command{
		Use:   "inspect [file.xlsx]",
		Short: "Print the cell values of a written workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			if _, err := os.Stat(args[0]); os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", args[0])
			}
			cells, err := exreport.Inspect(args[0])
			if err != nil {
				return fmt.Errorf("inspect failed: %w", err)
			}
			return output.Write(cmd.OutOrStdout(), cells, out, pretty)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&format, "output-format", string(output.FormatJSON), "Output format: json or yaml")
	return cmd
}
