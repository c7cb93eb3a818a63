package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/vk/gategrid/internal/circuit"
)

var (
	headColor   = color.New(color.FgHiGreen, color.Bold)
	subtleColor = color.New(color.FgHiBlack)
	highColor   = color.New(color.FgGreen, color.Bold)
	lowColor    = color.New(color.FgRed)
	warnColor   = color.New(color.FgYellow)
)

const (
	signalHigh = "HIGH"
	signalLow  = "LOW"
)

// writeReport prints the scene summary and one row per gate in record order.
func writeReport(w io.Writer, sceneID string, graph *circuit.Graph, signals circuit.Signals, feedback []string, errs []error) {
	headColor.Fprintf(w, "scene %s\n", sceneID)
	fmt.Fprintf(w, "  %s %d  %s %d\n",
		subtleColor.Sprint("gates"), len(graph.Gates()),
		subtleColor.Sprint("wires"), len(graph.Wires()))

	sinks := make([]string, 0, len(graph.Sinks()))
	for _, n := range graph.Sinks() {
		sinks = append(sinks, n.ID())
	}
	fmt.Fprintf(w, "  %s %s\n", subtleColor.Sprint("sinks"), listOrNone(sinks))
	if len(feedback) > 0 {
		fmt.Fprintf(w, "  %s %s\n", warnColor.Sprint("feedback"), strings.Join(feedback, ", "))
	} else {
		fmt.Fprintf(w, "  %s none\n", subtleColor.Sprint("feedback"))
	}
	for _, err := range errs {
		fmt.Fprintf(w, "  %s %v\n", warnColor.Sprint("error"), err)
	}

	if graph.IsEmpty() {
		fmt.Fprintln(w)
		subtleColor.Fprintln(w, "  Empty scene: nothing to evaluate.")
		return
	}

	headers := []string{"GATE", "TYPE", "SIGNAL"}
	rows := make([][]string, 0, len(graph.Gates()))
	for _, n := range graph.Gates() {
		sig := signalLow
		if signals.Gate(n.ID()) {
			sig = signalHigh
		}
		rows = append(rows, []string{n.ID(), n.Record.Type, sig})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, "  ")
	for i, h := range headers {
		headColor.Fprintf(w, "%-*s  ", widths[i], h)
	}
	fmt.Fprintln(w)
	for _, row := range rows {
		fmt.Fprintf(w, "  %-*s  %-*s  ", widths[0], row[0], widths[1], row[1])
		if row[2] == signalHigh {
			highColor.Fprintln(w, row[2])
		} else {
			lowColor.Fprintln(w, row[2])
		}
	}
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
