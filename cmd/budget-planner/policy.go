package main

import (
	"io"

	"github.com/iwvelando/education-cost-planner/internal/policy"
	"github.com/iwvelando/education-cost-planner/pkg/constants"
	"github.com/iwvelando/education-cost-planner/pkg/output"
	"github.com/iwvelando/education-cost-planner/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPolicyCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Compare programs, apply a tuition or living-cost policy and measure gaps to a target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, out)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.logger.Sync()
			}()
			return runPolicy(cmd, a)
		},
	}

	cmd.Flags().String("ny_living", "", "baseline annual living cost in New York (USD); defaults to the configured baseline")
	cmd.Flags().String("tuition-cut", "", "tuition reduction in percent (0-100)")
	cmd.Flags().String("living-subsidy", "", "living-cost subsidy in percent (0-100)")
	cmd.Flags().String("target", "", "target annual cost in USD; defaults to the median total")
	cmd.Flags().Int("top", constants.DefaultTopPrograms, "rows printed per ranking table")
	return cmd
}

func runPolicy(cmd *cobra.Command, a *app) error {
	const op = "main.runPolicy"

	nyBaseline := a.conf.NYBaseline
	if cmd.Flags().Changed("ny_living") {
		raw, _ := cmd.Flags().GetString("ny_living")
		value, err := validation.NYBaseline(raw)
		if err != nil {
			return err
		}
		nyBaseline = value
	}

	rawCut, _ := cmd.Flags().GetString("tuition-cut")
	cut, err := validation.PolicyLever("tuition_cut", rawCut)
	if err != nil {
		return err
	}
	rawSubsidy, _ := cmd.Flags().GetString("living-subsidy")
	subsidy, err := validation.PolicyLever("living_subsidy", rawSubsidy)
	if err != nil {
		return err
	}
	rawTarget, _ := cmd.Flags().GetString("target")
	target, err := validation.TargetAnnual(rawTarget)
	if err != nil {
		return err
	}
	top, _ := cmd.Flags().GetInt("top")
	if top <= 0 {
		top = constants.DefaultTopPrograms
	}

	ds, err := a.loadDataset()
	if err != nil || ds == nil {
		return err
	}

	rep, _ := policy.Analyze(ds, nyBaseline, policy.LeversFrom(cut, subsidy), target)
	a.logger.Debug("policy analysis complete",
		zap.String("op", op),
		zap.Int("programs", ds.Len()),
		zap.Float64("target", rep.TargetGap.Target),
		zap.String("total_column", rep.TargetGap.TotalColumn),
	)

	return output.Policy(a.out, a.outputFormat, rep, top)
}
