package lexer_test

import (
	"testing"

	"github.com/agenthands/ntac/pkg/compiler/lexer"
)

func TestScannerKinds(t *testing.T) {
	src := []byte("{ int a1; while (a1 < 10) a1 = a1 + 2 * 3; if (true) x = false; }")
	s := lexer.NewScanner(src)

	expected := []lexer.Kind{
		'{', lexer.KindBasic, lexer.KindIdentifier, ';',
		lexer.KindWhile, '(', lexer.KindIdentifier, '<', lexer.KindNumber, ')',
		lexer.KindIdentifier, '=', lexer.KindIdentifier, '+', lexer.KindNumber, '*', lexer.KindNumber, ';',
		lexer.KindIf, '(', lexer.KindTrue, ')', lexer.KindIdentifier, '=', lexer.KindFalse, ';',
		'}',
		lexer.KindEOF,
	}

	for i, exp := range expected {
		tok := s.Next()
		if tok.Kind != exp {
			t.Errorf("token %d: expected kind %v, got %v", i, exp, tok.Kind)
		}
	}

	// EOF is sticky.
	if tok := s.Next(); tok.Kind != lexer.KindEOF {
		t.Errorf("expected EOF after end of input, got %v", tok.Kind)
	}
}

func TestScannerNumbers(t *testing.T) {
	tests := []struct {
		src  string
		want int64
	}{
		{"0", 0},
		{"7", 7},
		{"1234567", 1234567},
		{"007", 7},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tok := lexer.NewScanner([]byte(tt.src)).Next()
			if tok.Kind != lexer.KindNumber {
				t.Fatalf("expected number, got %v", tok.Kind)
			}
			if tok.Value != tt.want {
				t.Errorf("expected %d, got %d", tt.want, tok.Value)
			}
		})
	}
}

func TestScannerInternsWords(t *testing.T) {
	s := lexer.NewScanner([]byte("count int count int"))

	first := s.Next()
	typ := s.Next()
	second := s.Next()
	typ2 := s.Next()

	if first.Word == nil || first.Word != second.Word {
		t.Errorf("identifier words not shared: %p vs %p", first.Word, second.Word)
	}
	if typ.Word != typ2.Word {
		t.Errorf("reserved words not shared")
	}
	if w, ok := s.Lookup("int"); !ok || w != typ.Word {
		t.Errorf("reserved word int not pre-registered")
	}
	if _, ok := s.Lookup("count"); !ok {
		t.Errorf("identifier not registered on first sight")
	}
}

func TestScannerLineTracking(t *testing.T) {
	s := lexer.NewScanner([]byte("a\n\nb\r\n  c"))

	wantLines := []int{1, 3, 4}
	for i, want := range wantLines {
		tok := s.Next()
		if tok.Line != want {
			t.Errorf("token %d (%v): expected line %d, got %d", i, tok, want, tok.Line)
		}
	}
}

func TestScannerUnknownBytesFallThrough(t *testing.T) {
	s := lexer.NewScanner([]byte("# $"))

	if tok := s.Next(); tok.Kind != '#' {
		t.Errorf("expected '#', got %v", tok.Kind)
	}
	if tok := s.Next(); tok.Kind != '$' {
		t.Errorf("expected '$', got %v", tok.Kind)
	}
}

func TestScannerResetForgetsIdentifiers(t *testing.T) {
	s := lexer.NewScanner([]byte("alpha"))
	s.Next()

	s.Reset([]byte("beta"))
	if _, ok := s.Lookup("alpha"); ok {
		t.Errorf("identifier survived Reset")
	}
	if _, ok := s.Lookup("while"); !ok {
		t.Errorf("reserved word lost on Reset")
	}
}
