package cli

import (
	"github.com/spf13/cobra"

	"github.com/fyerfyer/logicdiag/pkg/utils"
)

// NewEvalCommand creates the eval subcommand.
func NewEvalCommand(root *RootOptions) *cobra.Command {
	var (
		circuitFile string
		inputsSpec  string
		faultsSpec  string
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a circuit under an input assignment and optional fault hypothesis",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := utils.ParseNetlistFile(circuitFile)
			if err != nil {
				return err
			}
			inputs, err := parseInputs(inputsSpec)
			if err != nil {
				return err
			}
			faults := parseFaults(faultsSpec)

			result, err := reg.EvaluateWithFaults(inputs, faults)
			if err != nil {
				return err
			}
			return writeBool(cmd.OutOrStdout(), root.Format, result)
		},
	}

	cmd.Flags().StringVar(&circuitFile, "circuit", "", "circuit netlist file")
	cmd.Flags().StringVar(&inputsSpec, "inputs", "", "input assignment, e.g. a=1,b=1,c=1")
	cmd.Flags().StringVar(&faultsSpec, "faults", "", "comma-separated faulty gate labels")
	cmd.MarkFlagRequired("circuit")
	cmd.MarkFlagRequired("inputs")

	return cmd
}
