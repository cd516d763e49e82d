package emitter_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/agenthands/ntac/pkg/compiler/emitter"
	"github.com/agenthands/ntac/pkg/compiler/lexer"
	"github.com/agenthands/ntac/pkg/compiler/parser"
	"github.com/agenthands/ntac/pkg/tac"
)

func emit(t *testing.T, src string) (tac.Code, error) {
	t.Helper()
	p := parser.NewParser(lexer.NewScanner([]byte(src)))
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return emitter.NewEmitter().Emit(prog)
}

func TestEmitterPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "Arithmetic Precedence",
			src:  "{ int a; a = 1 + 2 * 3; }",
			want: []string{"tmp0 = 2 * 3", "tmp1 = 1 + tmp0", "a = tmp1"},
		},
		{
			name: "While Loop",
			src:  "{ int a; while (a < 10) { a = a + 1; } }",
			want: []string{
				"__0:",
				"tmp0 = a < 10",
				"ifFalse tmp0 goto __1",
				"tmp1 = a + 1",
				"a = tmp1",
				"goto __0",
				"__1:",
			},
		},
		{
			name: "If Statement",
			src:  "{ int a; int b; if (a < b) b = a; }",
			want: []string{"tmp0 = a < b", "ifFalse tmp0 goto __0", "b = a", "__0:"},
		},
		{
			name: "Chained Assignment",
			src:  "{ int a; int b; a = b = 4 - 1; }",
			want: []string{"tmp0 = 4 - 1", "b = tmp0", "a = tmp0"},
		},
		{
			name: "Bare Expression",
			src:  "{ int a; a; 7; }",
			want: nil,
		},
		{
			name: "Condition Is Plain Identifier",
			src:  "{ bool done; int n; while (done) n = 1; }",
			want: []string{"__0:", "ifFalse done goto __1", "n = 1", "goto __0", "__1:"},
		},
		{
			name: "Nested Control Flow",
			src:  "{ int i; while (i < 3) { if (i < 1) i = 2; i = i + 1; } }",
			want: []string{
				"__0:",
				"tmp0 = i < 3",
				"ifFalse tmp0 goto __1",
				"tmp1 = i < 1",
				"ifFalse tmp1 goto __2",
				"i = 2",
				"__2:",
				"tmp2 = i + 1",
				"i = tmp2",
				"goto __0",
				"__1:",
			},
		},
		{
			name: "Boolean Literal",
			src:  "{ bool b; b = true; if (false) b = false; }",
			want: []string{"b = true", "ifFalse false goto __0", "b = false", "__0:"},
		},
		{
			name: "Names Resembling Temporaries",
			src:  "{ int tmp; int tmpa; tmp = 1; tmpa = tmp + 2; }",
			want: []string{"tmp = 1", "tmp0 = tmp + 2", "tmpa = tmp0"},
		},
		{
			name: "Empty Program",
			src:  "{ }",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := emit(t, tt.src)
			if err != nil {
				t.Fatalf("Emit failed: %v", err)
			}
			got := code.Lines()
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("expected:\n%s\ngot:\n%s", strings.Join(tt.want, "\n"), strings.Join(got, "\n"))
			}
		})
	}
}

func TestEmitterSemanticErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		partial int
	}{
		{name: "Literal Target", src: "{ int a; 1 = a; }", partial: 0},
		{name: "Expression Target", src: "{ int a; a + 1 = 2; }", partial: 0},
		{name: "Undeclared Use", src: "{ int a; a = 1; a = b; }", partial: 1},
		{name: "Undeclared Target", src: "{ int a; a = 2 * 3; c = a; }", partial: 2},
		{name: "Out Of Scope", src: "{ { int y; y = 1; } y = 2; }", partial: 1},
		{name: "Temporary Name Assigned", src: "{ int tmp0; int a; tmp0 = 5; a = tmp0 + 1 * 2; }", partial: 0},
		{name: "Temporary Name Read", src: "{ int a; int tmp3; a = 2 * 2; a = tmp3; }", partial: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := emit(t, tt.src)
			if !errors.Is(err, emitter.ErrSemantic) {
				t.Fatalf("expected ErrSemantic, got %v", err)
			}
			if len(code) != tt.partial {
				t.Errorf("expected %d instructions before the error, got %d: %v", tt.partial, len(code), code.Lines())
			}
		})
	}
}

func TestEmitterWhileShape(t *testing.T) {
	code, err := emit(t, "{ int a; while (a < 10) { a = a + 1; } }")
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if n := code.Count(tac.OpIfFalse); n != 1 {
		t.Errorf("expected 1 ifFalse, got %d", n)
	}
	if n := code.Count(tac.OpGoto); n != 1 {
		t.Errorf("expected 1 goto, got %d", n)
	}
	if code[0].Op != tac.OpLabel || code[len(code)-2].Label != code[0].Label {
		t.Errorf("loop does not jump back to its own start label")
	}
}

func TestEmitterIfHasNoGoto(t *testing.T) {
	code, err := emit(t, "{ int a; if (a < 1) { a = 1; } }")
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if n := code.Count(tac.OpIfFalse); n != 1 {
		t.Errorf("expected 1 ifFalse, got %d", n)
	}
	if n := code.Count(tac.OpGoto); n != 0 {
		t.Errorf("expected no goto, got %d", n)
	}
}

func TestEmitterDeterministic(t *testing.T) {
	src := "{ int a; int b; while (a < 10) { if (b < a) b = b * 2; a = a + 1; } }"
	p := parser.NewParser(lexer.NewScanner([]byte(src)))
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	e := emitter.NewEmitter()
	first, err := e.Emit(prog)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	firstText := first.String()

	second, err := e.Emit(prog)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if second.String() != firstText {
		t.Errorf("re-emitting the same tree changed the output:\n%s\nvs\n%s", firstText, second.String())
	}
}
