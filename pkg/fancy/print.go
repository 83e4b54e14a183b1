package fancy

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/logrusorgru/aurora"

	"storj.io/delivery-metrics/pkg/report"
)

var (
	Info  = aurora.White
	Warn  = aurora.Yellow
	Error = aurora.Red
	Title = aurora.Cyan
)

type Level = func(arg any) aurora.Value

func Fprintln(w io.Writer, level Level, args ...any) {
	_, _ = fmt.Fprintln(w, level(fmt.Sprint(args...)))
}

func Fprintf(w io.Writer, level Level, format string, args ...any) {
	_, _ = fmt.Fprint(w, level(fmt.Sprintf(format, args...)))
}

func Finfoln(w io.Writer, args ...any) {
	Fprintln(w, Info, args...)
}

func Fwarnln(w io.Writer, args ...any) {
	Fprintln(w, Warn, args...)
}

func Fwarnf(w io.Writer, format string, args ...any) {
	Fprintf(w, Warn, format, args...)
}

func Ferrorf(w io.Writer, format string, args ...any) {
	Fprintf(w, Error, format, args...)
}

// Ftable prints a report table with its title, a header rule and the rows
// with the key column padded. Empty tables print a "(none)" row.
func Ftable(w io.Writer, table report.Table) {
	width := utf8.RuneCountInString(table.Columns[0])
	for _, row := range table.Rows {
		if n := utf8.RuneCountInString(row[0]); n > width {
			width = n
		}
	}

	line := func(key, value string) string {
		return key + strings.Repeat(" ", width-utf8.RuneCountInString(key)) + "  " + value
	}

	Fprintln(w, Title, table.Title)
	header := line(table.Columns[0], table.Columns[1])
	Finfoln(w, header)
	Finfoln(w, strings.Repeat("-", utf8.RuneCountInString(header)))
	if len(table.Rows) == 0 {
		Fwarnln(w, "(none)")
	}
	for _, row := range table.Rows {
		Finfoln(w, line(row[0], row[1]))
	}
}
