package syntax

// xfst node kinds.
const (
	KindCommand        = "command"
	KindDefine         = "define_statement"
	KindRegexStatement = "regex_statement"
	KindDefinitionName = "definition_name"
	KindQuotedSymbol   = "quoted_symbol"
)

// xfst regex operators, longest first. Dotted operators such as .o. are
// handled separately.
var xfstOperators = []string{
	"(->)", "@->", "->@", "<->", "->", "<-", "=>", "@>", ">@",
	"[", "]", "(", ")", "|", "&", "-", "~", "\\", "$", "*", "+", "^",
	"?", ":", ",", "_", "/", "@", "=", "<", ">", "{", "}",
}

// ParseXfst parses an xfst/foma script. Only the bodies of define and
// regex commands are tokenized; other commands are kept as opaque
// command nodes.
func ParseXfst(src []byte) *Tree {
	s := newScanner(src, '%')
	root := newNode(KindSource, 0, len(src))

	for {
		s.skipSpace()
		if s.eof() {
			break
		}

		switch {
		case s.peek() == '#':
			root.add(s.comment())
		case s.wordAt(s.pos, "define"):
			root.add(s.xfstDefine())
		case s.wordAt(s.pos, "regex"):
			root.add(s.xfstRegexStatement(len("regex")))
		case s.wordAt(s.pos, "read") && s.wordAt(s.skipBlankFrom(s.pos+len("read")), "regex"):
			n := s.skipBlankFrom(s.pos+len("read")) + len("regex") - s.pos
			root.add(s.xfstRegexStatement(n))
		default:
			start := s.pos
			end := s.lineEnd(start)
			if hash := s.closing(start, end, '#'); hash >= 0 {
				end = hash
			}
			s.pos = s.trimRight(start, end)
			root.add(newNode(KindCommand, start, s.pos))
		}
	}

	return &Tree{Root: root, Source: src}
}

func (s *scanner) skipBlankFrom(i int) int {
	for i < len(s.src) && isSpace(s.src[i]) {
		i++
	}
	return i
}

func (s *scanner) xfstDefine() *Node {
	stmt := newNode(KindDefine, s.pos, s.pos)
	stmt.add(s.keyword(len("define")))
	s.skipSpace()
	if !s.eof() {
		start := s.pos
		for !s.eof() && !isSpace(s.peek()) && s.peek() != '(' && s.peek() != ';' {
			s.pos = s.skipChar(s.pos)
		}
		if s.pos > start {
			stmt.add(newNode(KindDefinitionName, start, s.pos))
		}
	}
	s.xfstBody(stmt)
	return stmt
}

func (s *scanner) xfstRegexStatement(n int) *Node {
	stmt := newNode(KindRegexStatement, s.pos, s.pos)
	stmt.add(s.keyword(n))
	s.xfstBody(stmt)
	return stmt
}

// xfstBody reads a regular expression up to and including its terminating
// semicolon and attaches the resulting regex node to stmt.
func (s *scanner) xfstBody(stmt *Node) {
	body := newNode(KindRegex, s.pos, s.pos)
	var semi *Node

	for semi == nil {
		s.skipSpace()
		if s.eof() {
			break
		}
		switch c := s.peek(); {
		case c == ';':
			semi = newNode(KindSemicolon, s.pos, s.pos+1)
			s.pos++
		case c == '#':
			body.add(s.comment())
		case c == '"':
			body.add(s.quoted(KindQuotedSymbol))
		case c == '{':
			s.xfstBraces(body)
		case c == '.':
			body.add(s.xfstDot())
		default:
			if op := s.operator(xfstOperators); op > 0 {
				body.add(newNode(KindOperator, s.pos, s.pos+op))
				s.pos += op
			} else {
				body.add(s.xfstSymbol())
			}
		}
	}

	if n := len(body.Children); n > 0 {
		body.Start = body.Children[0].Start
		body.End = body.Children[n-1].End
		stmt.add(body)
	}
	if semi != nil {
		stmt.add(semi)
	}
	if n := len(stmt.Children); n > 0 {
		stmt.End = stmt.Children[n-1].End
	}
}

// xfstDot reads the boundary symbol .#. or a dotted operator like .o.;
// a lone dot is an operator.
func (s *scanner) xfstDot() *Node {
	start := s.pos
	if s.at(start+1) == '#' && s.at(start+2) == '.' {
		s.pos += 3
		return newNode(KindSymbol, start, s.pos)
	}
	i := start + 1
	for i < len(s.src) && isLetter(s.src[i]) {
		i++
	}
	if i > start+1 && s.at(i) == '.' {
		s.pos = i + 1
	} else {
		s.pos = start + 1
	}
	return newNode(KindOperator, start, s.pos)
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// xfstBraces reads a {...} string: every character inside is a symbol of
// its own.
func (s *scanner) xfstBraces(body *Node) {
	end := s.closing(s.pos+1, len(s.src), '}')
	if end < 0 {
		body.add(newNode(KindOperator, s.pos, s.pos+1))
		s.pos++
		return
	}
	body.add(newNode(KindOperator, s.pos, s.pos+1))
	for i := s.pos + 1; i < end; {
		j := s.skipCharIn(i, end)
		if !isSpace(s.src[i]) {
			body.add(newNode(KindSymbol, i, j))
		}
		i = j
	}
	body.add(newNode(KindOperator, end, end+1))
	s.pos = end + 1
}

func isXfstDelimiter(c byte) bool {
	switch c {
	case ';', '#', '"', '{', '}', '[', ']', '(', ')', '|', '&', '-', '~',
		'\\', '$', '*', '+', '^', '?', ':', ',', '_', '/', '@', '=', '<', '>', '.':
		return true
	}
	return isSpace(c)
}

// xfstSymbol reads a multichar symbol (or a definition reference, which is
// indistinguishable at this level). At least one character is consumed.
func (s *scanner) xfstSymbol() *Node {
	start := s.pos
	s.pos = s.skipChar(s.pos)
	for !s.eof() && !isXfstDelimiter(s.peek()) {
		s.pos = s.skipChar(s.pos)
	}
	return newNode(KindSymbol, start, s.pos)
}
