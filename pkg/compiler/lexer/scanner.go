package lexer

// Scanner performs lexical analysis on program source.
type Scanner struct {
	source []byte
	cursor int
	line   int
	words  map[string]*Word
}

// Reserved words known before scanning begins.
var reserved = []Word{
	{"true", KindTrue},
	{"false", KindFalse},
	{"while", KindWhile},
	{"if", KindIf},
	{"bool", KindBasic},
	{"char", KindBasic},
	{"int", KindBasic},
}

// NewScanner creates a new scanner for the given source.
func NewScanner(source []byte) *Scanner {
	s := &Scanner{}
	s.Reset(source)
	return s
}

// Reset re-initializes the scanner with new source. The word table is
// rebuilt so identifiers from a previous program do not leak.
func (s *Scanner) Reset(source []byte) {
	s.source = source
	s.cursor = 0
	s.line = 1
	s.words = make(map[string]*Word, len(reserved))
	for i := range reserved {
		w := reserved[i]
		s.reserve(&w)
	}
}

func (s *Scanner) reserve(w *Word) {
	s.words[w.Lexeme] = w
}

// Lookup returns the interned word for lexeme, if it has been seen.
func (s *Scanner) Lookup(lexeme string) (*Word, bool) {
	w, ok := s.words[lexeme]
	return w, ok
}

// Next returns the next token from the source. Once the source is
// exhausted every call returns a KindEOF token.
func (s *Scanner) Next() Token {
	s.skipWhitespace()

	if s.cursor >= len(s.source) {
		return Token{Kind: KindEOF, Line: s.line}
	}

	ch := s.source[s.cursor]
	if isDigit(ch) {
		return s.scanNumber()
	}
	if isAlpha(ch) {
		return s.scanWord()
	}

	s.cursor++
	return Token{Kind: Kind(ch), Line: s.line}
}

func (s *Scanner) skipWhitespace() {
	for s.cursor < len(s.source) {
		switch s.source[s.cursor] {
		case '\n':
			s.line++
		case ' ', '\t', '\r', '\v', '\f':
		default:
			return
		}
		s.cursor++
	}
}

// scanNumber reads a decimal literal. Overflow wraps silently.
func (s *Scanner) scanNumber() Token {
	var v int64
	for s.cursor < len(s.source) && isDigit(s.source[s.cursor]) {
		v = 10*v + int64(s.source[s.cursor]-'0')
		s.cursor++
	}
	return Token{Kind: KindNumber, Value: v, Line: s.line}
}

func (s *Scanner) scanWord() Token {
	start := s.cursor
	for s.cursor < len(s.source) && (isAlpha(s.source[s.cursor]) || isDigit(s.source[s.cursor])) {
		s.cursor++
	}

	lexeme := string(s.source[start:s.cursor])
	w, ok := s.words[lexeme]
	if !ok {
		w = &Word{Lexeme: lexeme, Kind: KindIdentifier}
		s.reserve(w)
	}
	return Token{Kind: w.Kind, Word: w, Line: s.line}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
