package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sqltext/internal/config"
	"sqltext/pkg/sqltext"
)

// getOutputFormat returns the effective output format from the root command's persistent flags.
func getOutputFormat(cmd *cobra.Command) string {
	v, _ := cmd.Root().PersistentFlags().GetString("output")
	return v
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printStatement writes an edit result in the requested format.
func printStatement(cmd *cobra.Command, stmt sqltext.Statement) error {
	if getOutputFormat(cmd) == config.OutputJSON {
		return printJSON(cmd.OutOrStdout(), map[string]string{"sql": stmt.String()})
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), stmt.String())
	return err
}

// readInput returns args joined with spaces, or all of stdin when args is
// empty or a single "-". It refuses to block on an interactive terminal.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("no SQL given: pass it as an argument or pipe it on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no SQL given: stdin was empty")
	}
	return text, nil
}

// readStatement reads SQL the way readInput does and wraps it.
func readStatement(cmd *cobra.Command, args []string) (sqltext.Statement, error) {
	text, err := readInput(cmd, args)
	if err != nil {
		return sqltext.Statement{}, err
	}
	return sqltext.Parse(text), nil
}
