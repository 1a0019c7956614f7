package main

import (
	"fmt"
	"os"
)

// stderr reporting for the commands. These address the person at the
// terminal; slog output is for whoever tails the server.

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiBold   = "\033[1m"
)

func paint(code, s string) string {
	if noColor {
		return s
	}
	return code + s + ansiReset
}

func report(code, glyph, format string, args ...any) {
	fmt.Fprintln(os.Stderr, paint(code, glyph+" "+fmt.Sprintf(format, args...)))
}

func printSuccess(format string, args ...any) { report(ansiGreen, "✓", format, args...) }

func printError(format string, args ...any) { report(ansiRed, "✗", format, args...) }

func printWarning(format string, args ...any) { report(ansiYellow, "!", format, args...) }

func printStep(format string, args ...any) { report(ansiCyan, "»", format, args...) }

// printStatus renders one "label: value" line, as used by eras status.
func printStatus(label, format string, args ...any) {
	fmt.Fprintf(os.Stderr, "  %s %s\n", paint(ansiBold, label+":"), fmt.Sprintf(format, args...))
}
