package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/structsim/structsim/internal/journal"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Session  string // optional - filter to one session
}

// TraceRecord is one journal row in the report.
type TraceRecord struct {
	SessionID string `json:"session_id"`
	Seq       int64  `json:"seq"`
	Time      string `json:"time"`
	Severity  string `json:"severity"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
}

// TraceReport holds the complete trace output.
type TraceReport struct {
	Sessions []string      `json:"sessions"`
	Records  []TraceRecord `json:"records"`
	Total    int           `json:"total"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Dump the persisted operation journal",
		Long: `Dump the operation journal persisted by sim --db.

Records are printed in append order (session, seq). With --session the
dump is limited to one session's log.

Examples:
  structsim trace --db ./session.db
  structsim trace --db ./session.db --session 0190b5a2-...
  structsim trace --db ./session.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "limit to one session ID")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("journal not found: %s", opts.Database))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := journal.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer st.Close()

	var records []journal.Record
	if opts.Session != "" {
		records, err = st.ReadSession(ctx, opts.Session)
	} else {
		records, err = st.ReadAll(ctx)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	sessions, err := st.Sessions(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}

	report := TraceReport{
		Sessions: sessions,
		Records:  make([]TraceRecord, len(records)),
		Total:    len(records),
	}
	for i, r := range records {
		report.Records[i] = TraceRecord{
			SessionID: r.SessionID,
			Seq:       r.Seq,
			Time:      r.Time.UTC().Format(time.RFC3339Nano),
			Severity:  r.Severity,
			Kind:      r.Kind,
			Message:   r.Message,
		}
	}

	if opts.Format == "json" {
		return outputJSON(cmd.OutOrStdout(), report)
	}
	return outputTraceText(cmd, report, opts.Verbose)
}

// outputTraceText outputs the trace report as text.
func outputTraceText(cmd *cobra.Command, report TraceReport, verbose bool) error {
	w := cmd.OutOrStdout()

	if report.Total == 0 {
		fmt.Fprintln(w, "No journal records found.")
		return nil
	}

	for _, r := range report.Records {
		fmt.Fprintf(w, "[%s/%d] %-7s %s\n", shortID(r.SessionID), r.Seq, r.Severity, r.Message)
		if verbose {
			fmt.Fprintf(w, "  time=%s kind=%s\n", r.Time, r.Kind)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d record(s) across %d session(s)\n", report.Total, len(report.Sessions))
	return nil
}

// shortID truncates a long session ID for display.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
