package rewrite

import (
	"strings"
	"testing"
)

// TestFindLiteralsParsesFields checks the field map a literal yields.
func TestFindLiteralsParsesFields(t *testing.T) {
	src := `let m = Message {
        id: "1".to_string(),
        role: Role::User,
        metadata: Some({ let x = 1; x }),
        created_at: 0,
    };`
	lits := findLiterals(src, "Message")
	if len(lits) != 1 {
		t.Fatalf("found %d literals, want 1", len(lits))
	}
	fields := lits[0].Fields
	wantNames := []string{"id", "role", "metadata", "created_at"}
	if len(fields) != len(wantNames) {
		t.Fatalf("parsed %d fields (%v), want %d", len(fields), fields, len(wantNames))
	}
	for i, w := range wantNames {
		if fields[i].Name != w {
			t.Errorf("field[%d].Name = %q, want %q", i, fields[i].Name, w)
		}
	}
	if fields[1].Value != "Role::User" {
		t.Errorf("role value = %q, want Role::User", fields[1].Value)
	}
	if fields[2].Value != "Some({ let x = 1; x })" {
		t.Errorf("metadata value = %q", fields[2].Value)
	}
	if !fields[3].comma {
		t.Error("created_at trailing comma not detected")
	}
}

// TestFindLiteralsSkipsStringsAndComments: type names inside strings or
// comments are not literals.
func TestFindLiteralsSkipsStringsAndComments(t *testing.T) {
	src := `// Message { fake: 1 }
let s = "Message { also_fake: 2 }";
let real = Message { id: "1".to_string() };`
	lits := findLiterals(src, "Message")
	if len(lits) != 1 {
		t.Fatalf("found %d literals, want 1 (strings/comments must be skipped)", len(lits))
	}
	if len(lits[0].Fields) != 1 || lits[0].Fields[0].Name != "id" {
		t.Errorf("parsed wrong literal: %+v", lits[0].Fields)
	}
}

// TestFindLiteralsWordBoundary: SubMessage is not Message.
func TestFindLiteralsWordBoundary(t *testing.T) {
	src := `let a = SubMessage { id: 1 }; let b = MessageKind { id: 2 };`
	if lits := findLiterals(src, "Message"); len(lits) != 0 {
		t.Errorf("matched inside other identifiers: %d literals", len(lits))
	}
}

// TestFindLiteralsNested finds both the outer and the inner literal.
func TestFindLiteralsNested(t *testing.T) {
	src := `Outer { inner: Inner { id: 1 }, tail: 2 }`
	outer := findLiterals(src, "Outer")
	inner := findLiterals(src, "Inner")
	if len(outer) != 1 || len(inner) != 1 {
		t.Fatalf("outer=%d inner=%d, want 1 and 1", len(outer), len(inner))
	}
	if len(outer[0].Fields) != 2 {
		t.Errorf("outer fields = %+v, want inner and tail", outer[0].Fields)
	}
	if outer[0].Fields[0].Value != "Inner { id: 1 }" {
		t.Errorf("inner value = %q", outer[0].Fields[0].Value)
	}
}

// TestCodeMaskRawStrings: raw strings with hashes are opaque.
func TestCodeMaskRawStrings(t *testing.T) {
	src := `let s = r#"Message { x: "1" }"#; let m = Message { id: 1 };`
	lits := findLiterals(src, "Message")
	if len(lits) != 1 {
		t.Fatalf("found %d literals, want 1", len(lits))
	}
}

// TestCodeMaskRawIdentifier: r#type is code, not a raw string opener, so
// the literal around it still parses.
func TestCodeMaskRawIdentifier(t *testing.T) {
	src := `let c = Config { r#type: Some(1), other: 2 };`
	mask := codeMask(src)
	at := strings.Index(src, "r#type")
	if !mask[at] || !mask[at+1] {
		t.Error("raw identifier bytes were masked out")
	}
	lits := findLiterals(src, "Config")
	if len(lits) != 1 {
		t.Fatalf("found %d literals, want 1", len(lits))
	}
	last := lits[0].Fields[len(lits[0].Fields)-1]
	if last.Name != "other" || last.Value != "2" {
		t.Errorf("fields after raw identifier misparsed: %+v", lits[0].Fields)
	}
}

// TestIndentAt returns the leading whitespace of the offset's line.
func TestIndentAt(t *testing.T) {
	src := "foo\n        bar\n"
	at := strings.Index(src, "bar")
	if got := indentAt(src, at); got != "        " {
		t.Errorf("indentAt = %q, want 8 spaces", got)
	}
}
