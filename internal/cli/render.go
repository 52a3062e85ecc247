package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/structsim/structsim/internal/engine"
	"github.com/structsim/structsim/internal/structure"
)

// logTailLines bounds the log excerpt shown under the slot view.
const logTailLines = 5

// slotColors maps the engine's palette tags to terminal colors.
var slotColors = map[string]color.Attribute{
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
}

// renderSnapshot draws the slot view, the pointers, the status line,
// and a log tail. With colorize off every element prints plain, which
// is also the form tests assert against.
func renderSnapshot(w io.Writer, snap engine.Snapshot, colorize bool) {
	fmt.Fprintf(w, "%s", snap.Kind)
	if snap.Kind == structure.KindPriorityQueue {
		fmt.Fprintf(w, " (%s)", snap.Mode)
	}
	fmt.Fprintf(w, "  capacity=%d length=%d\n", snap.Capacity, snap.Length)

	for _, slot := range snap.Slots {
		fmt.Fprintf(w, "  [%d] ", slot.Index)
		if slot.Element == nil {
			fmt.Fprint(w, ".")
		} else if colorize {
			attr, ok := slotColors[slot.Element.Color]
			if !ok {
				attr = color.FgWhite
			}
			color.New(attr).Fprintf(w, "%d", slot.Element.Value)
		} else {
			fmt.Fprintf(w, "%d", slot.Element.Value)
		}
		if marks := pointerMarks(snap, slot.Index); marks != "" {
			fmt.Fprintf(w, "  <- %s", marks)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "  busy=%s auto=%s\n", onOff(snap.Busy), onOff(snap.Armed))

	if len(snap.Log) > 0 {
		tail := snap.Log
		if len(tail) > logTailLines {
			tail = tail[len(tail)-logTailLines:]
		}
		fmt.Fprintln(w, "  log:")
		for _, entry := range tail {
			fmt.Fprintf(w, "    [%d] %-7s %s\n", entry.Seq, entry.Severity, entry.Message)
		}
	}
}

// pointerMarks labels a slot index with the pointers that sit on it.
// Stacks report (-1, -1) and get no marks; their top is the highest
// occupied slot, which the dense view already shows.
func pointerMarks(snap engine.Snapshot, index int) string {
	var marks []string
	if snap.Front >= 0 && snap.Front == index {
		marks = append(marks, "front")
	}
	if snap.Rear >= 0 && snap.Rear == index {
		marks = append(marks, "rear")
	}
	return strings.Join(marks, ", ")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
