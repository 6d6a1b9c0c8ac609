package encoding

import (
	"bytes"
	"strings"
	"testing"

	"github.com/coresat/cdclt/lit"
)

func TestParseDimacsSkipsCommentsAndHeader(t *testing.T) {
	doc := "c a comment\np cnf 3 2\n1 -2 0\n-1 3 0\n"
	clauses, nVars, err := ParseDimacs(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nVars != 3 {
		t.Fatalf("expected nVars=3, got %d", nVars)
	}
	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(clauses))
	}
	want := []lit.Atom{lit.FromDimacs(1), lit.FromDimacs(-2)}
	if clauses[0][0] != want[0] || clauses[0][1] != want[1] {
		t.Fatalf("unexpected first clause: %v", clauses[0])
	}
}

func TestWriteModelTerminatesWithZero(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteModel(&buf, []bool{true, false}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "v 1\n") || !strings.Contains(out, "v -2\n") || !strings.HasSuffix(out, "v 0\n") {
		t.Fatalf("unexpected output: %q", out)
	}
}
