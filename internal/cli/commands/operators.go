package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/prqlcore/internal/cliconfig"
	"github.com/leapstack-labs/prqlcore/pkg/dialect"
	"github.com/leapstack-labs/prqlcore/pkg/oplib"
)

// NewOperatorsCommand lists the operator library as resolved for a
// dialect — a CLI surface that falls out of the Operator Library Loader's
// module tree without needing any new machinery (SPEC_FULL.md
// Supplemented Features).
func NewOperatorsCommand() *cobra.Command {
	var dialectFlag string

	cmd := &cobra.Command{
		Use:   "operators",
		Short: "List the resolved operator library for a dialect",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := cliconfig.FromContext(cmd.Context())
			d := dialectFlag
			if d == "" {
				d = cfg.Dialect
			}
			canon := dialect.Canonical(d)
			if !dialect.Known(canon) {
				return fmt.Errorf("unknown dialect %q (known: %v)", d, dialect.List())
			}

			defs, err := oplib.ListForDialect(canon)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Operator", "Dialect", "Arity", "Strength", "Null-aware"})
			for _, def := range defs {
				t.AppendRow(table.Row{def.Name, string(canon), len(def.Params), def.Strength, def.AcceptsNull()})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&dialectFlag, "dialect", "", "dialect to list (default: config dialect)")
	return cmd
}
