package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sqltext/internal/config"
	"sqltext/pkg/sqltext"
)

func newClausesCmd(_ *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "clauses [sql...]",
		Short: "List the known clause keywords present in a statement",
		Long:  "List the known clause keywords that appear outside quotes and parentheses, in statement order.",
		Example: `  sqltext clauses "SELECT a FROM t WHERE x = 'FROM'"
  cat query.sql | sqltext clauses -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stmt, err := readStatement(cmd, args)
			if err != nil {
				return err
			}
			clauses := stmt.Clauses()
			if getOutputFormat(cmd) == config.OutputJSON {
				return printJSON(cmd.OutOrStdout(), map[string][]string{"clauses": clauses})
			}
			for _, c := range clauses {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newDictCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "dict [sql...]",
		Short: "Split a statement into its clauses",
		Long:  "Split a statement into a clause-keyword to clause-body mapping, in statement order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			stmt, err := readStatement(cmd, args)
			if err != nil {
				return err
			}
			m, err := s.editor().ToDict(stmt)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == config.OutputJSON {
				return printJSON(cmd.OutOrStdout(), m)
			}
			return printClauseTable(cmd.OutOrStdout(), m)
		},
	}
}

func newBuildCmd(_ *settings) *cobra.Command {
	var order []string

	cmd := &cobra.Command{
		Use:   "build [json]",
		Short: "Rebuild a statement from a clause mapping",
		Long: `Rebuild a statement from a JSON object of clause keyword to clause body.
Without --order the clauses are laid out in the canonical order of the
statement kind found in the mapping.`,
		Example: `  sqltext build '{"FROM": "t", "SELECT": "a, b"}'
  sqltext dict -o json "SELECT a FROM t" | sqltext build`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			m := sqltext.NewClauseMap()
			if err := json.Unmarshal([]byte(data), m); err != nil {
				return fmt.Errorf("parse clause mapping: %w", err)
			}
			for i := range order {
				order[i] = strings.ToUpper(strings.TrimSpace(order[i]))
			}
			stmt, err := sqltext.FromDict(m, order)
			if err != nil {
				return err
			}
			return printStatement(cmd, stmt)
		},
	}

	cmd.Flags().StringSliceVar(&order, "order", nil, "Clause order to use instead of the canonical one (comma-separated)")
	return cmd
}

func printClauseTable(w io.Writer, m *sqltext.ClauseMap) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CLAUSE\tBODY")
	for _, k := range m.Keys() {
		body, _ := m.Get(k)
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", k, sqltext.Normalize(body))
	}
	return tw.Flush()
}
