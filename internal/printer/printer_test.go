package printer_test

import (
	"strings"
	"testing"

	"classcify/internal/lexer"
	"classcify/internal/parser"
	"classcify/internal/printer"
)

func TestPrintIndentsByDepth(t *testing.T) {
	p := parser.New(lexer.New([]byte("(println (+ 1 2))")))
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	var buf strings.Builder
	printer.Print(&buf, prog)
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) == 0 {
		t.Fatal("expected printed output")
	}
	if strings.HasPrefix(lines[0], " ") {
		t.Fatalf("root line must not be indented: %q", lines[0])
	}

	var sawIndented bool
	for _, l := range lines[1:] {
		if strings.HasPrefix(l, "  ") {
			sawIndented = true
			break
		}
	}
	if !sawIndented {
		t.Fatalf("expected at least one indented child line, got:\n%s", out)
	}
}

func TestPrintLabelsLeafIdentifiers(t *testing.T) {
	p := parser.New(lexer.New([]byte("(vardec Int x) (= x 1)")))
	prog, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	var buf strings.Builder
	printer.Print(&buf, prog)
	out := buf.String()

	if !strings.Contains(out, "(x)") {
		t.Fatalf("expected a labeled node for identifier 'x', got:\n%s", out)
	}
}
