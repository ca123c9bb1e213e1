package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyerfyer/logicdiag/pkg/circuit"
	"github.com/fyerfyer/logicdiag/pkg/record"
)

// NewCheckCommand creates the check subcommand, which reconstructs a
// circuit from its record form and evaluates it.
func NewCheckCommand(root *RootOptions) *cobra.Command {
	var (
		recordsFile string
		inputsSpec  string
		faultsSpec  string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Reconstruct a circuit from records and evaluate it",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(recordsFile)
			if err != nil {
				return fmt.Errorf("read %s: %w", recordsFile, err)
			}
			var records []record.Record
			if err := json.Unmarshal(data, &records); err != nil {
				return fmt.Errorf("parse %s: %w", recordsFile, err)
			}

			node, err := record.FromRecords(records)
			if err != nil {
				return err
			}
			reg, err := circuit.Build(node)
			if err != nil {
				return err
			}

			inputs, err := parseInputs(inputsSpec)
			if err != nil {
				return err
			}
			result, err := reg.EvaluateWithFaults(inputs, parseFaults(faultsSpec))
			if err != nil {
				return err
			}
			return writeBool(cmd.OutOrStdout(), root.Format, result)
		},
	}

	cmd.Flags().StringVar(&recordsFile, "records", "", "record file (JSON)")
	cmd.Flags().StringVar(&inputsSpec, "inputs", "", "input assignment, e.g. a=1,b=1,c=1")
	cmd.Flags().StringVar(&faultsSpec, "faults", "", "comma-separated faulty gate labels")
	cmd.MarkFlagRequired("records")
	cmd.MarkFlagRequired("inputs")

	return cmd
}
