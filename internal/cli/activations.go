package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/born-ml/xorresilient/internal/activation"
	"github.com/born-ml/xorresilient/internal/report"
)

func newActivationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "activations",
		Short: "list the available activation functions and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(*report.NewDefaultTableStyle(!noColor))
			t.AppendHeader(table.Row{"Name", "Parameters", "Derivative"})
			for _, name := range activation.Names() {
				fn, err := activation.New(name)
				if err != nil {
					return err
				}
				t.AppendRow(table.Row{name, describeParams(fn), fn.HasDerivative()})
			}
			t.Render()
			return nil
		},
	}
}

func describeParams(fn activation.Function) string {
	names, values := fn.ParamNames(), fn.Params()
	if len(names) == 0 {
		return "-"
	}
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s=%g", n, values[i])
	}
	return strings.Join(parts, " ")
}
