package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyerfyer/logicdiag/pkg/record"
	"github.com/fyerfyer/logicdiag/pkg/utils"
)

// NewExportCommand creates the export subcommand, which serializes a
// circuit to the flat record format.
func NewExportCommand(root *RootOptions) *cobra.Command {
	var (
		circuitFile string
		outFile     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Serialize a circuit to its flat record form (JSON)",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := utils.ParseNetlistFile(circuitFile)
			if err != nil {
				return err
			}
			records, err := record.ToRecords(reg)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal records: %w", err)
			}
			data = append(data, '\n')

			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outFile, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outFile, err)
			}
			root.Logger.Info("exported circuit", "gates", len(records), "file", outFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&circuitFile, "circuit", "", "circuit netlist file")
	cmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")
	cmd.MarkFlagRequired("circuit")

	return cmd
}
