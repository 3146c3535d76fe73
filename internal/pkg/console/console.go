// Package console prints user facing progress messages. Diagnostics go to
// the log file instead.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	Output io.Writer = os.Stdout

	success = color.New(color.FgGreen)
	warning = color.New(color.FgYellow)
	failure = color.New(color.FgRed)
)

func Println(a ...any) {
	_, _ = fmt.Fprintln(Output, a...)
}

func Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(Output, format, a...)
}

func Success(format string, a ...any) {
	_, _ = success.Fprintf(Output, format+"\n", a...)
}

func Warning(format string, a ...any) {
	_, _ = warning.Fprintf(Output, format+"\n", a...)
}

func Error(format string, a ...any) {
	_, _ = failure.Fprintf(Output, format+"\n", a...)
}
