// Package commands holds the prqlcore CLI's subcommands: one
// NewXxxCommand constructor per file, wired into the root command.
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/prqlcore/internal/cliconfig"
	"github.com/leapstack-labs/prqlcore/pkg/format"
	"github.com/leapstack-labs/prqlcore/pkg/pr"
	"github.com/leapstack-labs/prqlcore/pkg/token"
)

// program is the on-disk JSON interchange shape for a parsed PR program:
// external parsing is out of scope for this core, so the `fmt`
// command's input is the tree a parser would have already produced, plus
// the aesthetic token stream the Comment Attacher needs.
type program struct {
	Stmts    []*pr.Stmt   `json:"stmts"`
	Comments token.Stream `json:"comments"`
}

// NewFmtCommand reprints one or more parsed program IRs as canonical
// source text. Multiple files are formatted concurrently via errgroup,
// safe because the operator library and formatter hold no mutable shared
// state once the process starts.
func NewFmtCommand() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "fmt <program.json>...",
		Short: "Reprint parsed program IR(s) as canonical source text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cliconfig.FromContext(cmd.Context())
			w := width
			if w == 0 {
				w = cfg.LineWidth
			}

			outputs := make([]string, len(args))
			g, _ := errgroup.WithContext(cmd.Context())
			for i, path := range args {
				g.Go(func() error {
					out, err := formatFile(path, w)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					outputs[i] = out
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for i, path := range args {
				if len(args) > 1 {
					fmt.Fprintf(cmd.OutOrStdout(), "-- %s\n", path)
				}
				fmt.Fprint(cmd.OutOrStdout(), outputs[i])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "line width (default: config line_width)")
	return cmd
}

func formatFile(path string, width int) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from CLI arguments, same trust boundary as any file-taking CLI tool
	if err != nil {
		return "", err
	}

	var p program
	if err := json.Unmarshal(data, &p); err != nil {
		return "", fmt.Errorf("decode program: %w", err)
	}

	return format.Program(p.Stmts, p.Comments, width)
}
