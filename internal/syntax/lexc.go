package syntax

// lexc node kinds.
const (
	KindMulticharSymbol = "multichar_symbol"
	KindDefinition      = "definition"
	KindContinuation    = "continuation"
	KindGloss           = "gloss"
	KindUpper           = "upper"
	KindLower           = "lower"
)

type lexcSection int

const (
	lexcNone lexcSection = iota
	lexcMultichar
	lexcDefinitions
	lexcLexicon
	lexcEnd
)

var lexcKeywords = []string{"Multichar_Symbols", "Definitions", "LEXICON", "END"}

// ParseLexc parses a lexc source file. Entries run up to their semicolon
// and may span lines. The form of an entry (upper:lower) becomes a
// lexicon_string node with upper, colon and lower children.
func ParseLexc(src []byte) *Tree {
	s := newScanner(src, '%')
	root := newNode(KindSource, 0, len(src))
	section := lexcNone

	for {
		s.skipSpace()
		if s.eof() {
			break
		}

		switch {
		case s.peek() == '!':
			root.add(s.comment())
		case s.wordAt(s.pos, "Multichar_Symbols"):
			root.add(s.keyword(len("Multichar_Symbols")))
			section = lexcMultichar
		case s.wordAt(s.pos, "Definitions"):
			root.add(s.keyword(len("Definitions")))
			section = lexcDefinitions
		case s.wordAt(s.pos, "LEXICON"):
			root.add(s.lexcHeader())
			section = lexcLexicon
		case s.wordAt(s.pos, "END"):
			root.add(s.keyword(len("END")))
			section = lexcEnd
		case section == lexcMultichar:
			start, end := s.lexcWord()
			root.add(newNode(KindMulticharSymbol, start, end))
		case section == lexcDefinitions:
			root.add(s.lexcDefinition())
		case section == lexcLexicon:
			root.add(s.lexcEntry())
		default:
			start, end := s.lexcWord()
			root.add(newNode(KindText, start, end))
		}
	}

	return &Tree{Root: root, Source: src}
}

func (s *scanner) keyword(n int) *Node {
	start := s.pos
	s.pos += n
	return newNode(KindKeyword, start, s.pos)
}

func (s *scanner) atLexcKeyword() bool {
	for _, kw := range lexcKeywords {
		if s.wordAt(s.pos, kw) {
			return true
		}
	}
	return false
}

// lexcWord reads a whitespace-delimited word. An unescaped ';' or '!'
// also ends it. At least one character is consumed.
func (s *scanner) lexcWord() (int, int) {
	start := s.pos
	s.pos = s.skipChar(s.pos)
	for !s.eof() {
		c := s.peek()
		if isSpace(c) || c == ';' || c == '!' {
			break
		}
		s.pos = s.skipChar(s.pos)
	}
	return start, s.pos
}

func (s *scanner) lexcHeader() *Node {
	start := s.pos
	s.pos += len("LEXICON")
	s.skipBlank()
	end := s.pos
	if !s.eof() && s.peek() != '\n' && s.peek() != '!' {
		_, end = s.lexcWord()
	}
	return newNode(KindLexiconHeader, start, s.trimRight(start, end))
}

func (s *scanner) lexcDefinition() *Node {
	start := s.pos
	end := s.closing(start, len(s.src), ';')
	if end < 0 {
		end = s.trimRight(start, s.lineEnd(start))
	} else {
		end++
	}
	s.pos = end
	return newNode(KindDefinition, start, end)
}

func (s *scanner) quoted(kind string) *Node {
	start := s.pos
	line := s.lineEnd(start)
	end := line
	if j := s.closing(start+1, line, '"'); j >= 0 {
		end = j + 1
	}
	s.pos = end
	return newNode(kind, start, end)
}

func (s *scanner) lexcEntry() *Node {
	entry := newNode(KindEntry, s.pos, s.pos)
	var parts []*Node

	finish := func() *Node {
		s.classifyLexcEntry(parts)
		if n := len(entry.Children); n > 0 {
			entry.End = entry.Children[n-1].End
		}
		return entry
	}

	for {
		s.skipSpace()
		if s.eof() {
			return finish()
		}

		switch c := s.peek(); {
		case c == ';':
			entry.add(newNode(KindSemicolon, s.pos, s.pos+1))
			s.pos++
			return finish()
		case c == '!':
			entry.add(s.comment())
		case c == '"':
			entry.add(s.quoted(KindGloss))
		case len(parts) > 0 && s.atLexcKeyword():
			// missing semicolon: the next section starts here
			return finish()
		case c == '<' && len(parts) == 0 && s.closing(s.pos+1, len(s.src), '>') >= 0:
			start := s.pos
			s.pos = s.closing(s.pos+1, len(s.src), '>') + 1
			n := newNode(KindRegex, start, s.pos)
			parts = append(parts, n)
			entry.add(n)
		default:
			start, end := s.lexcWord()
			n := newNode(KindText, start, end)
			parts = append(parts, n)
			entry.add(n)
		}
	}
}

// classifyLexcEntry assigns kinds to the words of an entry: a form and a
// continuation class, or a continuation class alone.
func (s *scanner) classifyLexcEntry(parts []*Node) {
	if len(parts) == 0 {
		return
	}
	rest := parts
	switch {
	case parts[0].Type == KindRegex:
		rest = parts[1:]
	case len(parts) >= 2:
		s.lexcForm(parts[0])
		rest = parts[1:]
	}
	if len(rest) > 0 {
		rest[0].Type = KindContinuation
	}
}

func (s *scanner) lexcForm(n *Node) {
	n.Type = KindLexiconString
	colon := s.closing(n.Start, n.End, ':')
	if colon < 0 {
		n.add(newNode(KindUpper, n.Start, n.End))
		return
	}
	if colon > n.Start {
		n.add(newNode(KindUpper, n.Start, colon))
	}
	n.add(newNode(KindColon, colon, colon+1))
	if colon+1 < n.End {
		n.add(newNode(KindLower, colon+1, n.End))
	}
}
