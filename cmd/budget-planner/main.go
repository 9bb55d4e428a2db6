package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/education-cost-planner/internal/budget"
	"github.com/iwvelando/education-cost-planner/internal/charts"
	"github.com/iwvelando/education-cost-planner/internal/config"
	"github.com/iwvelando/education-cost-planner/internal/dataset"
	"github.com/iwvelando/education-cost-planner/internal/logging"
	"github.com/iwvelando/education-cost-planner/internal/report"
	"github.com/iwvelando/education-cost-planner/pkg/constants"
	"github.com/iwvelando/education-cost-planner/pkg/output"
	"github.com/iwvelando/education-cost-planner/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

// app holds what every command needs once flags are parsed.
type app struct {
	conf         *config.Configuration
	logger       *zap.Logger
	outputFormat string
	datasetPath  string
	out          io.Writer
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "budget-planner",
		Short:         "Project the cost of studying abroad at a university",
		Version:       version,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, out)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.logger.Sync()
			}()
			return runBudget(cmd, a)
		},
	}
	rootCmd.SetOut(out)

	flags := rootCmd.PersistentFlags()
	flags.String("config", constants.DefaultConfigFile, "path to configuration file")
	flags.String("csv", constants.DefaultDatasetFile, "CSV file name")
	flags.String("output-format", "", "type of output override: pretty, csv, json")
	flags.String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.Flags().StringP("university", "u", "", "name (or partial) of university")
	rootCmd.Flags().String("ny_living", "", "your baseline annual living cost in New York (USD)")
	rootCmd.Flags().String("inflation", "", "annual cost-of-living inflation in percent")
	rootCmd.Flags().Bool("plot", false, "write the per-year stacked bar chart")
	rootCmd.Flags().String("save-plot", "", "save the per-year stacked bar chart to `FILE`")
	rootCmd.Flags().String("report-pdf", "", "write a PDF budget report to `FILE`")
	_ = rootCmd.MarkFlagRequired("university")
	_ = rootCmd.MarkFlagRequired("ny_living")

	rootCmd.AddCommand(newPolicyCmd(out))
	return rootCmd
}

// setup loads the configuration and logger shared by every command. Flags
// take precedence over the configuration file.
func setup(cmd *cobra.Command, out io.Writer) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	conf, err := config.LoadConfiguration(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", configPath, err)
	}

	logLevel, _ := cmd.Flags().GetString("log-level")
	logger, err := logging.New(conf.Logging, logLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	outputFormat := conf.Output.Format
	if override, _ := cmd.Flags().GetString("output-format"); override != "" {
		outputFormat = override
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return nil, err
	}

	datasetPath := conf.Dataset
	if cmd.Flags().Changed("csv") {
		datasetPath, _ = cmd.Flags().GetString("csv")
	}

	return &app{
		conf:         conf,
		logger:       logger,
		outputFormat: outputFormat,
		datasetPath:  datasetPath,
		out:          out,
	}, nil
}

func (a *app) pretty() bool {
	return a.outputFormat == constants.OutputFormatPretty
}

// loadDataset prints a diagnostic and returns nil when the CSV is absent.
func (a *app) loadDataset() (*dataset.Dataset, error) {
	ds, err := dataset.Load(a.logger, a.datasetPath)
	if err != nil {
		if errors.Is(err, dataset.ErrDatasetMissing) {
			fmt.Fprintf(a.out, "CSV file not found: %s\n", a.datasetPath)
			return nil, nil
		}
		return nil, err
	}
	if a.pretty() {
		fmt.Fprintf(a.out, "Loaded %d rows; columns: %s\n", ds.Len(), strings.Join(ds.Columns, ", "))
	}
	return ds, nil
}

func runBudget(cmd *cobra.Command, a *app) error {
	const op = "main.runBudget"

	query, _ := cmd.Flags().GetString("university")
	rawNY, _ := cmd.Flags().GetString("ny_living")
	nyLiving, err := validation.NYBaseline(rawNY)
	if err != nil {
		return err
	}
	rate := a.conf.InflationRate()
	if cmd.Flags().Changed("inflation") {
		rawInflation, _ := cmd.Flags().GetString("inflation")
		if _, rate, err = validation.InflationPercent(rawInflation); err != nil {
			return err
		}
	}

	ds, err := a.loadDataset()
	if err != nil || ds == nil {
		return err
	}

	rec, ok := dataset.FindUniversity(ds, query)
	if !ok {
		output.NoMatch(a.out, query, ds.SampleUniversities(constants.SampleUniversityLimit))
		return nil
	}
	if a.pretty() {
		output.Selected(a.out, rec)
	}

	result := budget.Compute(rec, nyLiving, rate)
	a.logger.Debug("budget computed",
		zap.String("op", op),
		zap.String("university", rec.University),
		zap.Int("years", result.DurationYears),
		zap.Float64("program_total_usd", result.ProgramTotalUSD),
	)

	if err := output.Budget(a.out, a.outputFormat, rec, result); err != nil {
		return err
	}

	plotPath, _ := cmd.Flags().GetString("save-plot")
	if show, _ := cmd.Flags().GetBool("plot"); show && plotPath == "" {
		plotPath = constants.DefaultPlotFile
	}
	if plotPath != "" {
		if err := charts.StackedPlot(result, plotPath); err != nil {
			a.logger.Error("failed to save plot",
				zap.String("op", op),
				zap.String("path", plotPath),
				zap.Error(err),
			)
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved plot to %s\n", plotPath)
	}

	if pdfPath, _ := cmd.Flags().GetString("report-pdf"); pdfPath != "" {
		written, err := report.WriteBudget(pdfPath, rec, result, time.Now())
		if err != nil {
			a.logger.Error("failed to write PDF report",
				zap.String("op", op),
				zap.String("path", pdfPath),
				zap.Error(err),
			)
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved PDF report to %s\n", written)
	}

	return nil
}
