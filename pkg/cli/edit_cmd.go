package cli

import (
	"github.com/spf13/cobra"

	"sqltext/pkg/sqltext"
)

// editFlags are the flags shared by the single-edit commands.
type editFlags struct {
	clause string
	text   string
}

func (f *editFlags) register(cmd *cobra.Command, textUsage string) {
	cmd.Flags().StringVarP(&f.clause, "clause", "c", "", "Clause keyword to edit, e.g. WHERE (required)")
	_ = cmd.MarkFlagRequired("clause")
	if textUsage != "" {
		cmd.Flags().StringVarP(&f.text, "text", "t", "", textUsage)
		_ = cmd.MarkFlagRequired("text")
	}
}

func newSetCmd(s *settings) *cobra.Command {
	var f editFlags
	cmd := &cobra.Command{
		Use:   "set [sql...]",
		Short: "Replace or insert a clause body",
		Example: `  sqltext set -c WHERE -t "id = 1" "SELECT * FROM t WHERE id = 2"
  sqltext set -c LIMIT -t 10 < query.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args, func(stmt sqltext.Statement) (sqltext.Statement, error) {
				return s.editor().SetClause(stmt, f.clause, f.text)
			})
		},
	}
	f.register(cmd, "New clause body (required)")
	return cmd
}

func newDeleteCmd(s *settings) *cobra.Command {
	var f editFlags
	cmd := &cobra.Command{
		Use:     "delete [sql...]",
		Short:   "Drop a clause from a statement",
		Example: `  sqltext delete -c LIMIT "SELECT * FROM t LIMIT 5"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args, func(stmt sqltext.Statement) (sqltext.Statement, error) {
				return s.editor().DeleteClause(stmt, f.clause)
			})
		},
	}
	f.register(cmd, "")
	return cmd
}

func newAppendCmd(s *settings) *cobra.Command {
	var (
		f      editFlags
		noJoin bool
	)
	cmd := &cobra.Command{
		Use:   "append [sql...]",
		Short: "Append text to an existing clause",
		Long: `Append text to an existing clause. Unless --no-implicit-join is given,
SELECT, SET and ORDER bodies are joined with ", " and VALUES and INSERT
bodies with "," before the new text.`,
		Example: `  sqltext append -c SELECT -t c "SELECT a, b FROM t"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args, func(stmt sqltext.Statement) (sqltext.Statement, error) {
				return s.editor().AppendToClause(stmt, f.clause, f.text, !noJoin)
			})
		},
	}
	f.register(cmd, "Text to append (required)")
	cmd.Flags().BoolVar(&noJoin, "no-implicit-join", false, "Append the text verbatim after a single space")
	return cmd
}

func newRemoveCmd(s *settings) *cobra.Command {
	var f editFlags
	cmd := &cobra.Command{
		Use:     "remove [sql...]",
		Short:   "Remove a substring from a clause",
		Example: `  sqltext remove -c SELECT -t b "SELECT a, b, c FROM t"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args, func(stmt sqltext.Statement) (sqltext.Statement, error) {
				return s.editor().RemoveFromClause(stmt, f.clause, f.text)
			})
		},
	}
	f.register(cmd, "Substring to remove (required)")
	return cmd
}

func runEdit(cmd *cobra.Command, args []string, edit func(sqltext.Statement) (sqltext.Statement, error)) error {
	stmt, err := readStatement(cmd, args)
	if err != nil {
		return err
	}
	out, err := edit(stmt)
	if err != nil {
		return err
	}
	return printStatement(cmd, out)
}
