package lexer

import "fmt"

// Kind represents the type of token identified by the scanner.
// Single-character tokens use the character code itself as their Kind,
// so every named kind starts above the byte range.
type Kind int32

const (
	KindNumber Kind = 256 + iota
	KindIdentifier
	KindTrue
	KindFalse
	KindBasic // bool, char, int
	KindWhile
	KindIf
	KindEOF
)

var kindNames = map[Kind]string{
	KindNumber:     "number",
	KindIdentifier: "identifier",
	KindTrue:       "true",
	KindFalse:      "false",
	KindBasic:      "type",
	KindWhile:      "while",
	KindIf:         "if",
	KindEOF:        "end of input",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	if k >= 0 && k < 256 {
		return fmt.Sprintf("'%c'", rune(k))
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

// Word is an interned lexeme. The scanner hands out the same *Word for
// every occurrence of a lexeme, reserved words included.
type Word struct {
	Lexeme string
	Kind   Kind
}

func (w *Word) String() string { return w.Lexeme }

// Token represents a lexical unit. Value is set for KindNumber, Word for
// identifiers, keywords and type names.
type Token struct {
	Kind  Kind
	Value int64
	Word  *Word
	Line  int
}

func (t Token) String() string {
	switch {
	case t.Kind == KindNumber:
		return fmt.Sprintf("%d", t.Value)
	case t.Word != nil:
		return t.Word.Lexeme
	default:
		return t.Kind.String()
	}
}
