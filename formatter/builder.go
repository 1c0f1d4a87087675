// Package formatter renders apgrep results for the terminal.
package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"

	"github.com/apertium/apgrep/grep"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	dialectStyle = color.New(color.FgYellow, color.Bold)
	countStyle   = color.New(color.FgHiBlue, color.Bold)
	addedStyle   = color.New(color.FgGreen)
	removedStyle = color.New(color.FgRed)
	hunkStyle    = color.New(color.FgCyan)
	headerStyle  = color.New(color.Bold)
	noStyle      = color.New(color.FgWhite)
)

const resultTemplate = `{{file .Path}} {{dialect .Dialect.String}}: {{if .Err -}}
{{failure .Err}}
{{- else -}}
{{changes .Changed .Ranges .Written}}
{{- end}}
`

var resultTmpl = template.Must(template.New("result").Funcs(template.FuncMap{
	"file":    file,
	"dialect": dialect,
	"failure": failure,
	"changes": changes,
}).Parse(resultTemplate))

// FormatResult renders a one-line report for a processed file.
func FormatResult(r grep.Result) string {
	var buf bytes.Buffer
	if err := resultTmpl.Execute(&buf, r); err != nil {
		return fmt.Sprintf("Error formatting result: %v\n", err)
	}
	return buf.String()
}

// FormatSummary renders the reports of every file followed by the totals.
// Files without changes are listed only when verbose is set.
func FormatSummary(results []grep.Result, verbose bool) string {
	var (
		builder        strings.Builder
		files, changed int
		failed         int
	)
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
		case r.Changed > 0:
			files++
			changed += r.Changed
		case !verbose:
			continue
		}
		builder.WriteString(FormatResult(r))
	}

	builder.WriteString(headerStyle.Sprintf("%d of %d files changed, %d ranges rewritten", files, len(results), changed))
	if failed > 0 {
		builder.WriteString(errorStyle.Sprintf(", %d failed", failed))
	}
	builder.WriteString("\n")
	return builder.String()
}

// utils functions used in the text templates

func file(path string) string {
	return fileStyle.Sprint(path)
}

func dialect(name string) string {
	return dialectStyle.Sprintf("[%s]", name)
}

func failure(err error) string {
	return errorStyle.Sprint("error: ") + noStyle.Sprint(err.Error())
}

func changes(changed, ranges int, written bool) string {
	s := countStyle.Sprintf("%d", changed) + fmt.Sprintf(" of %d ranges rewritten", ranges)
	if changed > 0 && !written {
		s += " (not written)"
	}
	return s
}
