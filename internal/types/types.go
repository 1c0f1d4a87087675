package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Dialect identifies one of the supported Apertium source formats.
type Dialect int

const (
	DialectUnknown Dialect = iota
	Lexd
	Lexc
	Twolc
	Xfst
)

var dialectNames = map[Dialect]string{
	Lexd:  "lexd",
	Lexc:  "lexc",
	Twolc: "twol",
	Xfst:  "xfst",
}

func (d Dialect) String() string {
	if name, ok := dialectNames[d]; ok {
		return name
	}
	return "unknown"
}

// IsList reports whether rules for the dialect match sequences of
// atomic units rather than whole symbols.
func (d Dialect) IsList() bool {
	return d == Lexd || d == Lexc
}

// Escape returns the character that escapes the next character in
// the dialect's source text.
func (d Dialect) Escape() byte {
	if d == Lexd {
		return '\\'
	}
	return '%'
}

// ParseDialect maps a dialect name (as used in rule files and flags)
// to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lexd":
		return Lexd, nil
	case "lexc":
		return Lexc, nil
	case "twol", "twolc":
		return Twolc, nil
	case "xfst", "foma":
		return Xfst, nil
	}
	return DialectUnknown, fmt.Errorf("unknown dialect %q", name)
}

var dialectExtensions = map[string]Dialect{
	".lexd":   Lexd,
	".lexc":   Lexc,
	".twol":   Twolc,
	".twolc":  Twolc,
	".xfst":   Xfst,
	".regex":  Xfst,
	".script": Xfst,
}

// DialectFromPath infers the dialect from a file name extension.
func DialectFromPath(path string) (Dialect, bool) {
	d, ok := dialectExtensions[strings.ToLower(filepath.Ext(path))]
	return d, ok
}

// Extensions returns every file extension associated with a dialect.
func Extensions() []string {
	exts := make([]string, 0, len(dialectExtensions))
	for ext := range dialectExtensions {
		exts = append(exts, ext)
	}
	return exts
}

// Range is a half-open byte span [Start, End) of a document.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Rule is a single ordered substitution. Both sides are sequences of
// atomic units; for scalar dialects each side holds exactly one unit.
type Rule struct {
	Name   string
	Source []string
	Target []string
}

func (r Rule) String() string {
	return strings.Join(r.Source, " ") + "/" + strings.Join(r.Target, " ")
}
