package syntax

// lexd node kinds.
const (
	KindPatternHeader  = "pattern_header"
	KindPatternLine    = "pattern_line"
	KindLexiconHeader  = "lexicon_header"
	KindAlias          = "alias"
	KindEntry          = "entry"
	KindLexiconSegment = "lexicon_segment"
	KindLexiconString  = "lexicon_string"
	KindTagSetting     = "tag_setting"
)

type lexdSection int

const (
	lexdNone lexdSection = iota
	lexdPatterns
	lexdLexicon
)

// ParseLexd parses a lexd source file. Every line of a LEXICON block is an
// entry whose whitespace-separated columns become lexicon_segment nodes;
// tag settings, inline regexes and colons inside a segment are child nodes
// of their own.
func ParseLexd(src []byte) *Tree {
	s := newScanner(src, '\\')
	root := newNode(KindSource, 0, len(src))
	section := lexdNone

	for {
		s.skipSpace()
		if s.eof() {
			break
		}
		end := s.lineEnd(s.pos)

		switch {
		case s.peek() == '#':
			root.add(s.comment())
		case s.wordAt(s.pos, "PATTERNS"), s.wordAt(s.pos, "PATTERN"):
			root.add(s.lexdLine(KindPatternHeader, end)...)
			section = lexdPatterns
		case s.wordAt(s.pos, "LEXICON"):
			root.add(s.lexdLine(KindLexiconHeader, end)...)
			section = lexdLexicon
		case s.wordAt(s.pos, "ALIAS"):
			root.add(s.lexdLine(KindAlias, end)...)
			section = lexdNone
		case section == lexdLexicon:
			root.add(s.lexdEntry(end)...)
		case section == lexdPatterns:
			root.add(s.lexdLine(KindPatternLine, end)...)
		default:
			root.add(s.lexdLine(KindText, end)...)
		}
		s.pos = end
	}

	return &Tree{Root: root, Source: src}
}

// lexdLine reads the rest of a line as one node of the given kind plus an
// optional trailing comment.
func (s *scanner) lexdLine(kind string, end int) []*Node {
	start := s.pos
	hash := s.closing(start, end, '#')
	textEnd := end
	if hash >= 0 {
		textEnd = hash
	}

	var nodes []*Node
	if textEnd = s.trimRight(start, textEnd); textEnd > start {
		nodes = append(nodes, newNode(kind, start, textEnd))
	}
	if hash >= 0 {
		s.pos = hash
		nodes = append(nodes, s.comment())
	}
	return nodes
}

func (s *scanner) lexdEntry(end int) []*Node {
	entry := newNode(KindEntry, s.pos, s.pos)
	var comment *Node

	for s.pos < end {
		s.skipBlank()
		if s.pos >= end {
			break
		}
		if s.peek() == '#' {
			comment = s.comment()
			break
		}
		seg := s.lexdSegment(end)
		entry.add(seg)
		entry.End = seg.End
	}

	var nodes []*Node
	if len(entry.Children) > 0 {
		nodes = append(nodes, entry)
	}
	if comment != nil {
		nodes = append(nodes, comment)
	}
	return nodes
}

// lexdSegment reads one column of a lexicon entry. Tags (<...>) and
// multichar symbols ({...}) are stepped over whole so that a colon or a
// slash inside them is not mistaken for syntax.
func (s *scanner) lexdSegment(end int) *Node {
	seg := newNode(KindLexiconSegment, s.pos, s.pos)
	text := -1
	flush := func(at int) {
		if text >= 0 && at > text {
			seg.add(newNode(KindLexiconString, text, at))
		}
		text = -1
	}

	i := s.pos
scan:
	for i < end {
		c := s.src[i]
		switch c {
		case ' ', '\t', '\r', '\f', '\v', '#':
			break scan
		case '[', '/':
			kind, close := KindTagSetting, byte(']')
			if c == '/' {
				kind, close = KindRegex, '/'
			}
			if j := s.closing(i+1, end, close); j >= 0 {
				flush(i)
				seg.add(newNode(kind, i, j+1))
				i = j + 1
				continue
			}
		case ':':
			flush(i)
			seg.add(newNode(KindColon, i, i+1))
			i++
			continue
		case '<', '{':
			close := byte('>')
			if c == '{' {
				close = '}'
			}
			if j := s.bracketEnd(i+1, end, close); j >= 0 {
				if text < 0 {
					text = i
				}
				i = j + 1
				continue
			}
		}
		if text < 0 {
			text = i
		}
		i = s.skipCharIn(i, end)
	}

	flush(i)
	seg.End = i
	s.pos = i
	return seg
}

// bracketEnd finds the close byte of a bracketed symbol whose content has
// no whitespace and no escape character. It returns -1 if there is none.
func (s *scanner) bracketEnd(from, limit int, close byte) int {
	for i := from; i < limit; i++ {
		switch c := s.src[i]; {
		case c == close:
			return i
		case c == s.escape, isSpace(c):
			return -1
		}
	}
	return -1
}
