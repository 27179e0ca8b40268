// Package cli implements the urlparts command line tool.
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/edirooss/urlparts/internal/config"
	"github.com/edirooss/urlparts/pkg/fmtt"
	"github.com/edirooss/urlparts/pkg/urlparts"
	"github.com/spf13/cobra"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputDump = "dump"
)

// NewRootCmd builds the command tree. Input lines are read from in when
// parse is called without arguments.
func NewRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "urlparts",
		Short:         "Break URLs down into protocol, host, path, search, params and fragment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(newParseCmd(), newGetCmd(), newVersionCmd())
	return root
}

func newParseCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse [url...]",
		Short: "Print every component of each URL (reads stdin lines when no url is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case outputText, outputJSON, outputDump:
			default:
				return fmt.Errorf("unknown output format %q (want text, json or dump)", output)
			}

			if len(args) == 0 {
				var err error
				if args, err = readLines(cmd.InOrStdin()); err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			w := cmd.OutOrStdout()
			if output == outputJSON {
				enc := json.NewEncoder(w)
				enc.SetEscapeHTML(false)
				for _, raw := range args {
					if err := enc.Encode(urlparts.Parse(raw)); err != nil {
						return err
					}
				}
				return nil
			}

			for i, raw := range args {
				if i > 0 {
					fmt.Fprintln(w)
				}
				parts := urlparts.Parse(raw)
				if output == outputDump {
					fmtt.Dump(w, parts)
					continue
				}
				fmt.Fprintf(w, "url: %s\n%s", strings.TrimSpace(raw), parts)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text, json or dump")
	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "get <protocol|host|path|search|fragment|params> <url>",
		Short:     "Print a single component; exits non-zero when it is absent",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"protocol", "host", "path", "search", "fragment", "params"},
		RunE: func(cmd *cobra.Command, args []string) error {
			field, raw := args[0], args[1]
			w := cmd.OutOrStdout()

			if field == "params" {
				params := urlparts.Params(raw)
				if len(params) == 0 {
					return absentError(field)
				}
				for _, kv := range params {
					fmt.Fprintf(w, "%s=%s\n", kv.Key, kv.Value)
				}
				return nil
			}

			v, ok := urlparts.Parse(raw).Field(field)
			if !ok {
				return fmt.Errorf("unknown component %q", field)
			}
			if v == nil {
				return absentError(field)
			}
			fmt.Fprintln(w, *v)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "urlparts %s (commit %s, built %s)\n", config.Version, config.GitCommit, config.BuildDate)
		},
	}
}

// AbsentError is returned by get when the requested component is absent.
type AbsentError struct{ Field string }

func (e *AbsentError) Error() string { return e.Field + " is absent" }

func absentError(field string) error { return &AbsentError{Field: field} }

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			lines = append(lines, sc.Text())
		}
	}
	return lines, sc.Err()
}
