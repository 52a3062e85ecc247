package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/structsim/structsim/internal/harness"
)

// ScriptOptions holds flags for the script command.
type ScriptOptions struct {
	*RootOptions
}

// ScriptResult is the reportable outcome of a scenario run.
type ScriptResult struct {
	Name   string               `json:"name"`
	Pass   bool                 `json:"pass"`
	Trace  []harness.TraceEvent `json:"trace"`
	Errors []string             `json:"errors,omitempty"`
}

// NewScriptCommand creates the script command.
func NewScriptCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScriptOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "script <scenario.yaml>",
		Short: "Run a scenario file",
		Long: `Run a YAML scenario file against a deterministic session.

Each step is executed in order and checked against its expect clause;
final-state assertions run after the last step. The collected trace is
printed along with the verdict.

Exit codes:
  0 - Scenario passed
  1 - Scenario failed (expectation or assertion miss)
  2 - Command error (file not found, invalid scenario)

Examples:
  structsim script ./scenarios/circular-boundary.yaml
  structsim script ./scenarios/priority-stability.yaml --format json
  structsim script ./scenarios/stack-push-pop.yaml --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(opts, args[0], cmd)
		},
	}

	return cmd
}

func runScript(opts *ScriptOptions, path string, cmd *cobra.Command) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenario file not found: %s", path))
	}

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	result, err := harness.Run(scenario)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to run scenario", err)
	}

	report := ScriptResult{
		Name:   scenario.Name,
		Pass:   result.Pass,
		Trace:  result.Trace,
		Errors: result.Errors,
	}

	if opts.Format == "json" {
		return outputScriptJSON(cmd, report)
	}
	return outputScriptText(cmd, report, opts.Verbose)
}

// outputScriptJSON outputs the scenario result as JSON.
func outputScriptJSON(cmd *cobra.Command, report ScriptResult) error {
	w := cmd.OutOrStdout()
	if report.Pass {
		if err := outputJSON(w, report); err != nil {
			return err
		}
		return nil
	}
	if err := outputJSONError(w, "E_SCENARIO_FAILED", fmt.Sprintf("scenario %s failed", report.Name), report); err != nil {
		return err
	}
	return NewExitError(ExitFailure, fmt.Sprintf("scenario %s failed", report.Name))
}

// outputScriptText outputs the scenario result as text.
func outputScriptText(cmd *cobra.Command, report ScriptResult, verbose bool) error {
	w := cmd.OutOrStdout()

	if verbose {
		for _, ev := range report.Trace {
			switch ev.Type {
			case "step":
				fmt.Fprintf(w, "  [%d] %s/%s: %s\n", ev.Seq, ev.Op, ev.Phase, ev.Detail)
			case "log":
				fmt.Fprintf(w, "  [%d] %-7s %s\n", ev.Seq, ev.Severity, ev.Message)
			}
		}
		fmt.Fprintln(w)
	}

	if report.Pass {
		fmt.Fprintf(w, "✓ %s\n", report.Name)
		return nil
	}

	fmt.Fprintf(w, "✗ %s\n", report.Name)
	for _, e := range report.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("scenario %s failed", report.Name))
}
