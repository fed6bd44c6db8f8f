package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"panostitch/internal/assembly"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// Options describe the run parameters echoed in the report header.
type Options struct {
	Mode     string
	PanoConf float64
	Resize   float64
	Output   string
	Colorize bool
}

// Write renders the textual run report for run to w.
func Write(w io.Writer, run assembly.Run, opts Options) error {
	_, err := io.WriteString(w, Render(run, opts))
	return err
}

// Render builds the report text: the run header, the processing order, one
// table row per step, any skipped images, and the images in the composite.
func Render(run assembly.Run, opts Options) string {
	var b strings.Builder
	for _, line := range sectionHeader("Panorama run", opts.Colorize) {
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "Run:     %s\n", run.ID)
	fmt.Fprintf(&b, "Engine:  %s\n", run.Engine)
	fmt.Fprintf(&b, "Mode:    %s\n", opts.Mode)
	fmt.Fprintf(&b, "Conf:    %s\n", strconv.FormatFloat(opts.PanoConf, 'g', -1, 64))
	fmt.Fprintf(&b, "Resize:  %s\n", strconv.FormatFloat(opts.Resize, 'g', -1, 64))
	if opts.Output != "" {
		fmt.Fprintf(&b, "Output:  %s\n", opts.Output)
	}

	b.WriteString("\nOrder:\n")
	b.WriteString(OrderList(run.Order))

	if len(run.Order) > 0 {
		b.WriteString("\n")
		b.WriteString(stepTable(run, opts.Colorize))
		b.WriteString("\n")
	}

	if skipped := run.Skipped(); len(skipped) > 0 {
		b.WriteString("\nSkipped:\n")
		for _, id := range skipped {
			b.WriteString("  " + colorize(id, ansiRed, opts.Colorize) + "\n")
		}
	}

	b.WriteString("\nUsed images:\n")
	for _, id := range run.Final.Used {
		b.WriteString("  " + id + "\n")
	}
	return b.String()
}

// OrderList renders one numbered line per identifier.
func OrderList(ids []string) string {
	var b strings.Builder
	for i, id := range ids {
		fmt.Fprintf(&b, "  %3d  %s\n", i+1, id)
	}
	return b.String()
}

func stepTable(run assembly.Run, color bool) string {
	rows := make([][]string, 0, len(run.Steps)+1)
	if len(run.Order) > 0 {
		rows = append(rows, []string{"0", run.Order[0], colorize("seed", ansiBlue, color), "-", "-", "-"})
	}
	for _, step := range run.Steps {
		rows = append(rows, []string{
			strconv.Itoa(step.Index),
			step.ID,
			stepLabel(step.Outcome, color),
			callStatus(step, assembly.CallPrimary),
			callStatus(step, assembly.CallWindow),
			callStatus(step, assembly.CallMerge),
		})
	}
	return renderTable(
		[]string{"#", "Image", "Result", "Primary", "Window", "Merge"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	)
}

func callStatus(step assembly.StepRecord, call assembly.Call) string {
	status, ok := step.Status(call)
	if !ok {
		return "-"
	}
	return status.String()
}

func stepLabel(outcome assembly.Outcome, color bool) string {
	switch outcome {
	case assembly.OutcomeOK:
		return colorize(outcome.String(), ansiGreen, color)
	case assembly.OutcomeFallback:
		return colorize(outcome.String(), ansiYellow, color)
	default:
		return colorize(outcome.String(), ansiRed, color)
	}
}

func colorize(value, ansi string, color bool) string {
	if !color {
		return value
	}
	return ansi + value + ansiReset
}

func sectionHeader(title string, color bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if color {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

// ShouldColorize reports whether writer is a terminal.
func ShouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
