package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ColorsEnabled returns true if terminal colors should be used.
// Respects NO_COLOR environment variable (https://no-color.org/)
func ColorsEnabled() bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Symbols for CLI output (ASCII-compatible)
const (
	SymbolSuccess = "+"
	SymbolError   = "x"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
	dim   = color.New(color.Faint)
)

func init() {
	color.NoColor = !ColorsEnabled()
}

// Success returns text styled for success messages
func Success(text string) string {
	return green.Sprint(text)
}

// Error returns text styled for error messages
func Error(text string) string {
	return red.Sprint(text)
}

// Dim returns text in dim style
func Dim(text string) string {
	return dim.Sprint(text)
}

// FprintSuccess writes a success message prefixed with the success symbol
func FprintSuccess(out io.Writer, message string) {
	fmt.Fprintf(out, "%s %s\n", Success(SymbolSuccess), Success(message))
}

// FprintSecondary writes indented supplementary information
func FprintSecondary(out io.Writer, message string) {
	fmt.Fprintf(out, "  -> %s\n", Dim(message))
}

// FprintError writes an error message prefixed with the error symbol
func FprintError(out io.Writer, message string) {
	fmt.Fprintf(out, "%s %s\n", Error(SymbolError), Error(message))
}

// PrintError prints an error message with X symbol to stderr
func PrintError(message string) {
	FprintError(os.Stderr, message)
}

// Plural returns the singular or plural form based on count
func Plural(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
