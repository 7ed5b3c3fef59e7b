package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/prqlcore/internal/cliconfig"
	"github.com/leapstack-labs/prqlcore/internal/diagnostic"
	"github.com/leapstack-labs/prqlcore/pkg/dialect"
	"github.com/leapstack-labs/prqlcore/pkg/rq"
	"github.com/leapstack-labs/prqlcore/pkg/translate"
)

// NewTranslateCommand translates a single RQ expression (read as JSON,
// since RQ is the Operator Translator's input shape, not source text —
// parsing source text is out of scope for this core) into dialect-specific
// SQL.
func NewTranslateCommand() *cobra.Command {
	var dialectFlag string

	cmd := &cobra.Command{
		Use:   "translate <expr.json>",
		Short: "Translate an RQ expression to dialect-specific SQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cliconfig.FromContext(cmd.Context())
			d := dialectFlag
			if d == "" {
				d = cfg.Dialect
			}

			data, err := os.ReadFile(args[0]) //nolint:gosec // G304: path comes from CLI arguments
			if err != nil {
				return err
			}

			var e rq.Expr
			if err := json.Unmarshal(data, &e); err != nil {
				return fmt.Errorf("decode expression: %w", err)
			}

			res, err := translate.Translate(&e, dialect.Canonical(d))
			if err != nil {
				sessionID := diagnostic.NewSession()
				diag := diagnostic.New(sessionID, err.Error(), nil)
				styles := diagnostic.NoColorStyles
				if cfg.Color {
					styles = diagnostic.DefaultStyles
				}
				fmt.Fprint(cmd.ErrOrStderr(), diagnostic.Render(diag, "", styles))
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			return nil
		},
	}

	cmd.Flags().StringVar(&dialectFlag, "dialect", "", "target SQL dialect (default: config dialect)")
	return cmd
}
