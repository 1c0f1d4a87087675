package formatter

import (
	"strings"
)

// FormatDiff colours a unified diff line by line.
func FormatDiff(diff string) string {
	if diff == "" {
		return ""
	}

	var builder strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			builder.WriteString(headerStyle.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			builder.WriteString(hunkStyle.Sprint(line))
		case strings.HasPrefix(line, "+"):
			builder.WriteString(addedStyle.Sprint(line))
		case strings.HasPrefix(line, "-"):
			builder.WriteString(removedStyle.Sprint(line))
		default:
			builder.WriteString(line)
		}
	}
	return builder.String()
}
