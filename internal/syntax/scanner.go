package syntax

import "unicode/utf8"

// scanner is a byte cursor shared by the dialect parsers. Every syntactic
// delimiter of the four dialects is ASCII, so scanning bytes is safe for
// UTF-8 input as long as escapes step over whole runes.
type scanner struct {
	src    []byte
	pos    int
	escape byte
}

func newScanner(src []byte, escape byte) *scanner {
	return &scanner{src: src, escape: escape}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	return s.at(s.pos)
}

func (s *scanner) at(i int) byte {
	if i < 0 || i >= len(s.src) {
		return 0
	}
	return s.src[i]
}

// next returns the offset just after the character starting at i.
func (s *scanner) next(i int) int {
	if i >= len(s.src) {
		return len(s.src)
	}
	if s.src[i] < utf8.RuneSelf {
		return i + 1
	}
	_, size := utf8.DecodeRune(s.src[i:])
	return i + size
}

// skipChar returns the offset after the character at i, treating an escape
// character and the character it protects as one.
func (s *scanner) skipChar(i int) int {
	if s.at(i) == s.escape && i+1 < len(s.src) {
		return s.next(i + 1)
	}
	return s.next(i)
}

// skipCharIn is skipChar bounded by limit: an escape character in the
// last position before limit stands alone.
func (s *scanner) skipCharIn(i, limit int) int {
	if s.at(i) == s.escape && i+1 < limit {
		return s.next(i + 1)
	}
	return s.next(i)
}

// trimRight returns the end of src[start:end] without trailing blanks.
func (s *scanner) trimRight(start, end int) int {
	for end > start && isSpace(s.src[end-1]) {
		end--
	}
	return end
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return false
}

func isBlank(c byte) bool {
	return c != '\n' && isSpace(c)
}

func (s *scanner) skipSpace() {
	for !s.eof() && isSpace(s.peek()) {
		s.pos++
	}
}

func (s *scanner) skipBlank() {
	for !s.eof() && isBlank(s.peek()) {
		s.pos++
	}
}

// lineEnd returns the offset of the newline ending the line that contains
// i, or the end of input.
func (s *scanner) lineEnd(i int) int {
	for i < len(s.src) && s.src[i] != '\n' {
		i++
	}
	return i
}

// closing returns the offset of the first unescaped close byte in
// [from, limit), or -1.
func (s *scanner) closing(from, limit int, close byte) int {
	for i := from; i < limit; {
		switch s.src[i] {
		case close:
			return i
		case s.escape:
			i = s.skipChar(i)
		default:
			i = s.next(i)
		}
	}
	return -1
}

// wordAt reports whether word starts at i and ends at a word boundary.
func (s *scanner) wordAt(i int, word string) bool {
	end := i + len(word)
	if end > len(s.src) || string(s.src[i:end]) != word {
		return false
	}
	return end == len(s.src) || isSpace(s.src[end]) || s.src[end] == '!' || s.src[end] == '#' || s.src[end] == ';'
}

// comment consumes a comment running to the end of the current line.
func (s *scanner) comment() *Node {
	start := s.pos
	s.pos = s.lineEnd(s.pos)
	return newNode(KindComment, start, s.pos)
}
