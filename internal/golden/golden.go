// Package golden is a fixture-driven comparison harness for the front
// end's three stages, adapted from the teacher's test/ package (a
// hand-rolled runner that diffed a reference interpreter's output
// against this one, printing colorized "[passed]"/"[failed]" lines).
// This version runs fixtures straight through the in-process compiler
// API instead of spawning a second binary, and reports through
// testing.T while keeping the teacher's colorized summary line.
package golden

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/fatih/color"

	"classcify/internal/checker"
	"classcify/internal/lexer"
	"classcify/internal/parser"
)

// Case is one fixture: a source file and the verdict it must produce.
type Case struct {
	Name string
	Path string

	WantPass      bool   // true iff tokenize+parse+check must all succeed
	WantSubstring string // when !WantPass, a substring the diagnostic must contain
}

// Collect reads every "<name>.cc" / "<name>.expected" pair in dir, in
// the same spirit as the teacher's collectSuites/getEntries walk.
func Collect(dir string) ([]Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".cc") {
			names = append(names, strings.TrimSuffix(e.Name(), ".cc"))
		}
	}
	sort.Strings(names)

	cases := make([]Case, 0, len(names))
	for _, name := range names {
		expectedPath := filepath.Join(dir, name+".expected")
		raw, err := os.ReadFile(expectedPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", expectedPath, err)
		}
		c := Case{Name: name, Path: filepath.Join(dir, name+".cc")}
		lines := strings.SplitN(strings.TrimRight(string(raw), "\n"), "\n", 2)
		switch strings.TrimSpace(lines[0]) {
		case "PASS":
			c.WantPass = true
		case "FAIL":
			c.WantPass = false
			if len(lines) > 1 {
				c.WantSubstring = strings.TrimSpace(lines[1])
			}
		default:
			return nil, fmt.Errorf("%s: first line must be PASS or FAIL", expectedPath)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// Run executes every case in dir as a subtest, printing the teacher's
// colorized pass/fail summary line for each.
func Run(t *testing.T, dir string) {
	cases, err := Collect(dir)
	if err != nil {
		t.Fatalf("collecting fixtures: %v", err)
	}
	if len(cases) == 0 {
		t.Fatalf("no fixtures found under %s", dir)
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			got, gotErr := compile(tc.Path)
			ok := (gotErr == nil) == tc.WantPass
			if ok && !tc.WantPass && tc.WantSubstring != "" {
				ok = strings.Contains(gotErr.Error(), tc.WantSubstring)
			}
			printResult(tc.Name, ok)
			if !ok {
				if tc.WantPass {
					t.Errorf("expected %s to pass, got error: %v", tc.Name, gotErr)
				} else {
					t.Errorf("expected %s to fail containing %q, got: %v (output %q)", tc.Name, tc.WantSubstring, gotErr, got)
				}
			}
		})
	}
}

func compile(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	p := parser.New(lexer.New(src))
	prog, err := p.Parse()
	if err != nil {
		return "", err
	}
	if err := checker.Check(prog); err != nil {
		return "", err
	}
	return "Type checking passed.", nil
}

func printResult(name string, passed bool) {
	if passed {
		fmt.Printf("  [%s] %s\n", color.GreenString("passed"), name)
		return
	}
	fmt.Printf("  [%s] %s\n", color.RedString("failed"), name)
}
