// Package internal implements the replacement engine behind apgrep.
//
// A document goes through four stages:
//
// Parse: the dialect parser turns the raw bytes into a syntax tree
// (see internal/syntax).
//
// Select: the dialect selector extracts the byte ranges that hold
// replaceable content. Comments, regexes, tag settings and the like are
// never selected.
//
// Rewrite: list dialects (lexd, lexc) split every range into atomic units
// and apply the rules as subsequence substitutions; scalar dialects
// (twolc, xfst) compare the whole range with each rule's single source
// symbol.
//
// Reassemble: untouched bytes are copied verbatim and each changed range
// is replaced by its rewritten text.
//
// Usage:
//
//	engine, err := internal.NewEngine(types.Lexd, rules)
//	if err != nil {
//	    // handle error
//	}
//
//	result, err := engine.Run(doc)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Print(result.Output)
//
// An Engine is immutable after construction and may be shared between
// goroutines.
package internal
