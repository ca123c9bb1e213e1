package cli

import (
	"github.com/spf13/cobra"

	"github.com/fyerfyer/logicdiag/pkg/diagnose"
	"github.com/fyerfyer/logicdiag/pkg/utils"
)

// NewDiagnoseCommand creates the diagnose subcommand.
func NewDiagnoseCommand(root *RootOptions) *cobra.Command {
	var (
		circuitFile string
		inputsSpec  string
		expected    bool
		all         bool
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Find gate fault sets that explain an observed output",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := utils.ParseNetlistFile(circuitFile)
			if err != nil {
				return err
			}
			inputs, err := parseInputs(inputsSpec)
			if err != nil {
				return err
			}

			if workers == 0 {
				workers = root.Config.Workers
			}
			root.Logger.Debug("searching fault sets",
				"gates", reg.GateCount(), "expected", expected, "workers", workers)

			sets, err := diagnose.FindFaultySetsParallel(
				cmd.Context(), reg, inputs, expected, workers)
			if err != nil {
				return err
			}
			root.Logger.Debug("search finished", "candidates", len(sets))

			if !all {
				sets = diagnose.ReduceToMinimal(sets)
			}
			return writeSets(cmd.OutOrStdout(), root.Format, sets)
		},
	}

	cmd.Flags().StringVar(&circuitFile, "circuit", "", "circuit netlist file")
	cmd.Flags().StringVar(&inputsSpec, "inputs", "", "input assignment, e.g. a=1,b=1,c=1")
	cmd.Flags().BoolVar(&expected, "expect", false, "observed circuit output")
	cmd.Flags().BoolVar(&all, "all", false, "print the full candidate list instead of the minimal sets")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel search workers (default from config)")
	cmd.MarkFlagRequired("circuit")
	cmd.MarkFlagRequired("inputs")
	cmd.MarkFlagRequired("expect")

	return cmd
}
