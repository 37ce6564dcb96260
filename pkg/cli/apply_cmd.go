package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sqltext/internal/config"
	"sqltext/internal/editscript"
	"sqltext/pkg/sqltext"
)

func newApplyCmd(s *settings) *cobra.Command {
	var (
		scriptPath string
		outDir     string
		dryRun     bool
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "apply -f script.yaml [file...]",
		Short: "Apply a YAML edit script to SQL files or stdin",
		Long: `Apply a YAML edit script to one statement per file, rewriting files in
place (or into --out-dir). With no files the statement is read from stdin
and the result printed.

Script format:

  mode: lenient        # optional, overrides --mode
  edits:
    - op: set          # set | delete | append | remove
      clause: WHERE
      text: id = 1
    - op: append
      clause: SELECT
      text: c
      implicit-join: false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := editscript.Load(scriptPath)
			if err != nil {
				return err
			}
			editor := sqltext.NewEditor(
				sqltext.WithMode(script.ResolveMode(s.mode)),
				sqltext.WithLogger(s.logger),
			)

			if len(args) == 0 {
				stmt, err := readStatement(cmd, nil)
				if err != nil {
					return err
				}
				out, err := script.Apply(editor, stmt)
				if err != nil {
					return err
				}
				return printStatement(cmd, out)
			}

			if !cmd.Flags().Changed("workers") {
				workers = s.concurrency
			}
			results, applyErr := editscript.ApplyFiles(cmd.Context(), editor, script, args, editscript.FileOptions{
				OutDir:  outDir,
				Workers: workers,
				DryRun:  dryRun,
				Logger:  s.logger,
			})

			if getOutputFormat(cmd) == config.OutputJSON {
				type row struct {
					editscript.FileResult
					Error string `json:"error,omitempty"`
				}
				rows := make([]row, 0, len(results))
				for _, r := range results {
					rw := row{FileResult: r}
					if r.Err != nil {
						rw.Error = r.Err.Error()
					}
					rows = append(rows, rw)
				}
				if err := printJSON(cmd.OutOrStdout(), map[string]interface{}{"files": rows}); err != nil {
					return err
				}
				return applyErr
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				switch {
				case r.Err != nil:
					_, _ = fmt.Fprintf(out, "FAIL %s: %v\n", r.Path, r.Err)
				case dryRun:
					_, _ = fmt.Fprintf(out, "-- %s\n%s\n", r.Path, r.Output)
				default:
					_, _ = fmt.Fprintf(out, "ok   %s -> %s\n", r.Path, r.Written)
				}
			}
			return applyErr
		},
	}

	cmd.Flags().StringVarP(&scriptPath, "file", "f", "", "Edit script (YAML) to apply (required)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Write rewritten files here instead of in place")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print results without writing files")
	cmd.Flags().IntVar(&workers, "workers", 4, "Files to rewrite concurrently (default from SQLTEXT_CONCURRENCY)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
