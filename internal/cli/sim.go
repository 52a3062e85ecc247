package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/structsim/structsim/internal/engine"
	"github.com/structsim/structsim/internal/journal"
	"github.com/structsim/structsim/internal/structure"
)

// SimOptions holds flags for the sim command.
type SimOptions struct {
	*RootOptions
	Kind     string
	Capacity int
	Mode     string
	Database string
	Session  string
	Delay    time.Duration
}

// NewSimCommand creates the sim command.
func NewSimCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run an interactive simulation session",
		Long: `Run an interactive simulation session.

Reads commands from stdin, performs them step by step against the
selected structure variant, and renders the slot view after each one.
Auto-play removals run on a background timer while armed.

Commands:
  push|enqueue|insert [n]   insert a value (random when omitted)
  pop|dequeue|remove        remove the variant's candidate element
  fill                      random-fill the structure in one shot
  auto                      toggle auto-play
  reset                     clear structure and log
  cap <n>                   set capacity (4-16, resets)
  mode <max|min>            set priority ordering (resets)
  kind <variant>            switch variant (resets)
  quit                      exit

Examples:
  structsim sim --kind stack --capacity 4
  structsim sim --kind circular-queue --db ./session.db --verbose
  structsim sim --kind stack --db ./session.db --session 0190b5a2-...
  structsim sim --kind priority-queue --mode min --delay 0`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSim(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", string(structure.KindStack), "structure variant")
	cmd.Flags().IntVar(&opts.Capacity, "capacity", engine.DefaultCapacity, "slot count (4-16)")
	cmd.Flags().StringVar(&opts.Mode, "mode", string(structure.ModeMax), "priority ordering (max|min)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite journal (optional)")
	cmd.Flags().StringVar(&opts.Session, "session", "", "resume a journaled session ID (requires --db)")
	cmd.Flags().DurationVar(&opts.Delay, "delay", engine.DefaultStepDelay, "per-phase highlight delay")

	return cmd
}

func runSim(opts *SimOptions, cmd *cobra.Command) error {
	kind, err := structure.ParseKind(opts.Kind)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --kind", err)
	}
	mode, err := structure.ParseMode(opts.Mode)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --mode", err)
	}

	if opts.Session != "" && opts.Database == "" {
		return NewExitError(ExitCommandError, "--session requires --db")
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sessionOpts := []engine.Option{
		engine.WithMode(mode),
		engine.WithStepDelay(opts.Delay),
	}

	// Persist the log as it grows. Duplicate appends after a crashy
	// restart are absorbed by the journal's first-write-wins key.
	var st *journal.Store
	if opts.Database != "" {
		slog.Info("opening journal", "path", opts.Database)
		var err error
		st, err = journal.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing journal", "error", closeErr)
			}
		}()

		// Resuming picks the clock up after the last persisted entry;
		// a fresh clock would collide with journaled seqs and those
		// appends would be silently dropped.
		if opts.Session != "" {
			last, err := st.LastSeq(ctx, opts.Session)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read last seq", err)
			}
			sessionOpts = append(sessionOpts,
				engine.WithSessionID(opts.Session),
				engine.WithSequence(last),
			)
			slog.Info("resuming session", "session", opts.Session, "last_seq", last)
		}
	}

	session, err := engine.NewSession(kind, opts.Capacity, sessionOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create session", err)
	}

	if st != nil {
		session.Subscribe(func(ev engine.Event) {
			le, ok := ev.(engine.LogEvent)
			if !ok {
				return
			}
			record := journal.Record{
				SessionID: session.ID(),
				Seq:       le.Entry.Seq,
				Time:      le.Entry.Time,
				Severity:  string(le.Entry.Severity),
				Kind:      string(session.Snapshot().Kind),
				Message:   le.Entry.Message,
			}
			if err := st.Append(ctx, record); err != nil {
				slog.Error("journal append failed", "seq", record.Seq, "error", err)
			}
		})
		slog.Info("journal ready", "session", session.ID())
	}

	out := cmd.OutOrStdout()

	// Echo each executing phase as it plays.
	session.Subscribe(func(ev engine.Event) {
		if step, ok := ev.(engine.StepEvent); ok {
			fmt.Fprintf(out, "  %s: %s\n", step.Phase, step.Detail)
		}
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	scheduler := engine.NewScheduler(session, engine.DefaultInterval)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := scheduler.Run(gctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	fmt.Fprintf(out, "session %s\n", session.ID())
	renderSnapshot(out, session.Snapshot(), true)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		if quit := execSimCommand(session, scanner.Text(), out); quit {
			break
		}
		fmt.Fprint(out, "> ")
	}
	if err := scanner.Err(); err != nil {
		cancel()
		_ = g.Wait()
		return WrapExitError(ExitCommandError, "read input", err)
	}

	cancel()
	if err := g.Wait(); err != nil {
		return WrapExitError(ExitFailure, "scheduler error", err)
	}
	slog.Info("session ended", "session", session.ID())
	return nil
}

// execSimCommand parses and performs one prompt line. Rejected
// operations print their error and leave the session unchanged; only
// quit/exit report true.
func execSimCommand(session *engine.Session, line string, out io.Writer) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "quit", "exit":
		return true

	case "push", "enqueue", "insert":
		// Malformed input coerces the same way a blank one does: the
		// engine substitutes a random value.
		var value *int
		if len(args) > 0 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				value = &n
			}
		}
		if _, err := session.Insert(value); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}

	case "pop", "dequeue", "remove":
		if _, err := session.Remove(); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}

	case "fill":
		if _, err := session.RandomFill(); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}

	case "auto":
		if session.Toggle() {
			fmt.Fprintln(out, "auto-play armed")
		} else {
			fmt.Fprintln(out, "auto-play disarmed")
		}

	case "reset":
		if err := session.Reset(); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}

	case "cap":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: cap <n>")
			return false
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(out, "error: not a number: %q\n", args[0])
			return false
		}
		if err := session.SetCapacity(n); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}

	case "mode":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: mode <max|min>")
			return false
		}
		mode, err := structure.ParseMode(args[0])
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return false
		}
		if err := session.SetPriorityMode(mode); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}

	case "kind":
		if len(args) != 1 {
			fmt.Fprintf(out, "usage: kind <%s>\n", kindList())
			return false
		}
		kind, err := structure.ParseKind(args[0])
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return false
		}
		if err := session.SelectKind(kind); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}

	default:
		fmt.Fprintf(out, "unknown command %q (try: push, pop, fill, auto, reset, cap, mode, kind, quit)\n", verb)
		return false
	}

	renderSnapshot(out, session.Snapshot(), true)
	return false
}

func kindList() string {
	names := make([]string, len(structure.Kinds))
	for i, k := range structure.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, "|")
}
