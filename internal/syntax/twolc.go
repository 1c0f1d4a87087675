package syntax

// twolc node kinds.
const (
	KindRuleName = "rule_name"
	KindSetName  = "set_name"
)

var twolcSections = []string{
	"Alphabet",
	"Diacritics",
	"Sets",
	"Definitions",
	"Rule-variables",
	"Rules",
}

var twolcRuleKeywords = []string{"where", "in", "matched"}

// twolc operators, longest first.
var twolcOperators = []string{
	"<=>", "/<=", "<=", "=>",
	"_", ":", ";", "=", "(", ")", "[", "]", "|", "*", "+", "?",
	"\\", "~", "$", "&", "-", "^", ",", "/", "<", ">",
}

// ParseTwolc parses a twolc rule file into a flat list of tokens under the
// root. Every alphabet character, set member and rule context character is
// a symbol node; names declared with '=' in the Sets and Definitions
// sections are set_name nodes.
func ParseTwolc(src []byte) *Tree {
	s := newScanner(src, '%')
	root := newNode(KindSource, 0, len(src))
	section := ""
	stmtStart := true

	for {
		s.skipSpace()
		if s.eof() {
			break
		}

		if kw := s.twolcSection(); kw != "" {
			root.add(s.keyword(len(kw)))
			section = kw
			stmtStart = true
			continue
		}

		c := s.peek()
		switch {
		case c == '!':
			root.add(s.comment())
		case c == '"':
			root.add(s.quoted(KindRuleName))
		default:
			if op := s.operator(twolcOperators); op > 0 {
				start := s.pos
				s.pos += op
				root.add(newNode(KindOperator, start, s.pos))
				stmtStart = c == ';'
				continue
			}
			start, end := s.twolcWord()
			root.add(newNode(s.twolcWordKind(section, start, end, stmtStart), start, end))
			stmtStart = false
		}
	}

	return &Tree{Root: root, Source: src}
}

func (s *scanner) twolcSection() string {
	for _, kw := range twolcSections {
		if s.wordAt(s.pos, kw) {
			return kw
		}
	}
	return ""
}

// operator returns the length of the operator at the cursor, or 0.
func (s *scanner) operator(ops []string) int {
	for _, op := range ops {
		end := s.pos + len(op)
		if end <= len(s.src) && string(s.src[s.pos:end]) == op {
			return len(op)
		}
	}
	return 0
}

func isTwolcDelimiter(c byte) bool {
	switch c {
	case '!', '"', '_', ':', ';', '=', '(', ')', '[', ']', '|', '*', '+', '?',
		'\\', '~', '$', '&', '-', '^', ',', '/', '<', '>':
		return true
	}
	return isSpace(c)
}

// twolcWord reads a run of symbol characters. At least one character is
// consumed.
func (s *scanner) twolcWord() (int, int) {
	start := s.pos
	s.pos = s.skipChar(s.pos)
	for !s.eof() && !isTwolcDelimiter(s.peek()) {
		s.pos = s.skipChar(s.pos)
	}
	return start, s.pos
}

func (s *scanner) twolcWordKind(section string, start, end int, stmtStart bool) string {
	word := string(s.src[start:end])
	if section == "Rules" {
		for _, kw := range twolcRuleKeywords {
			if word == kw {
				return KindKeyword
			}
		}
	}
	if stmtStart && (section == "Sets" || section == "Definitions") {
		i := end
		for i < len(s.src) && isSpace(s.src[i]) {
			i++
		}
		if s.at(i) == '=' && s.at(i+1) != '>' {
			return KindSetName
		}
	}
	return KindSymbol
}
