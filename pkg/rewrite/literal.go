// Package rewrite implements the structural rewrite passes applied to
// generated test sources after a data-model change. Struct literals are
// recognized by brace matching rather than pattern matching, so an edit
// can never bleed across into an adjacent, unrelated literal.
package rewrite

import "strings"

// Literal is one struct-literal occurrence: `TypeName { field: expr, ... }`.
type Literal struct {
	Type      string
	Start     int // offset of the type name
	BodyStart int // offset just past the opening brace
	BodyEnd   int // offset of the matching closing brace
	Fields    []Field
}

// Field is a single field assignment inside a literal's body. Value holds
// the raw expression text; offsets index into the original source.
type Field struct {
	Name     string
	Value    string
	start    int // offset of the field name
	valStart int // offset of the first byte of the value
	end      int // offset just past the value (before any trailing comma)
	comma    bool
}

// codeMask marks which bytes of src are plain code, i.e. not inside a
// string literal, char literal, or comment. Rust-flavored: handles "",
// r"" / r#""#, '\n' style chars, // and /* */ comments. A lone ' (a
// lifetime) is left as code.
func codeMask(src string) []bool {
	mask := make([]bool, len(src))
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			i += 2
			for i+1 < len(src) && !(src[i] == '*' && src[i+1] == '/') {
				i++
			}
			i += 2
		case c == '"':
			i = skipString(src, i)
		case c == 'r' && i+1 < len(src) && (src[i+1] == '"' || src[i+1] == '#') &&
			(i == 0 || !isIdentByte(src[i-1])):
			if j, ok := skipRawString(src, i); ok {
				i = j
			} else {
				mask[i] = true
				i++
			}
		case c == '\'':
			if j, ok := charLiteralEnd(src, i); ok {
				i = j
			} else {
				mask[i] = true
				i++
			}
		default:
			mask[i] = true
			i++
		}
	}
	return mask
}

// skipString advances past a double-quoted string starting at i.
func skipString(src string, i int) int {
	i++ // opening quote
	for i < len(src) {
		if src[i] == '\\' {
			i += 2
			continue
		}
		if src[i] == '"' {
			return i + 1
		}
		i++
	}
	return i
}

// skipRawString advances past r"..." or r#"..."# starting at the 'r'.
// ok is false when no quote follows the hashes, i.e. a raw identifier
// like r#type, which is ordinary code.
func skipRawString(src string, i int) (int, bool) {
	i++ // 'r'
	hashes := 0
	for i < len(src) && src[i] == '#' {
		hashes++
		i++
	}
	if i >= len(src) || src[i] != '"' {
		return i, false
	}
	i++
	closer := `"` + strings.Repeat("#", hashes)
	if j := strings.Index(src[i:], closer); j >= 0 {
		return i + j + len(closer), true
	}
	return len(src), true
}

// charLiteralEnd reports the end of a char literal starting at the quote,
// distinguishing 'a' and '\n' from lifetime markers like 'static.
func charLiteralEnd(src string, i int) (int, bool) {
	if i+2 < len(src) && src[i+1] == '\\' {
		// escaped char: '\x' possibly longer escapes; scan to closing quote
		for j := i + 2; j < len(src) && j < i+8; j++ {
			if src[j] == '\'' {
				return j + 1, true
			}
		}
		return 0, false
	}
	if i+2 < len(src) && src[i+2] == '\'' {
		return i + 3, true
	}
	return 0, false
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// matchDelim returns the offset of the delimiter closing the one at open,
// honoring {} [] () nesting and skipping non-code bytes. Returns -1 when
// unbalanced.
func matchDelim(src string, mask []bool, open int) int {
	depth := 0
	for i := open; i < len(src); i++ {
		if !mask[i] {
			continue
		}
		switch src[i] {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// findLiterals locates every `typeName { ... }` literal in src.
func findLiterals(src, typeName string) []Literal {
	mask := codeMask(src)
	var lits []Literal
	for i := 0; ; {
		j := strings.Index(src[i:], typeName)
		if j < 0 {
			break
		}
		at := i + j
		i = at + len(typeName)
		if !mask[at] {
			continue
		}
		if at > 0 && isIdentByte(src[at-1]) {
			continue
		}
		end := at + len(typeName)
		if end < len(src) && isIdentByte(src[end]) {
			continue
		}
		// skip whitespace to the opening brace
		k := end
		for k < len(src) && (src[k] == ' ' || src[k] == '\t' || src[k] == '\n' || src[k] == '\r') {
			k++
		}
		if k >= len(src) || src[k] != '{' {
			continue
		}
		closeAt := matchDelim(src, mask, k)
		if closeAt < 0 {
			continue
		}
		lit := Literal{Type: typeName, Start: at, BodyStart: k + 1, BodyEnd: closeAt}
		lit.Fields = parseFields(src, mask, k+1, closeAt)
		lits = append(lits, lit)
	}
	return lits
}

// parseFields splits a literal body into field assignments at top-level
// commas. Entries without a `name:` head (spreads like ..Default::default())
// are skipped.
func parseFields(src string, mask []bool, bodyStart, bodyEnd int) []Field {
	var fields []Field
	entryStart := bodyStart
	depth := 0
	flush := func(start, end, commaAt int) {
		f, ok := parseField(src, start, end)
		if !ok {
			return
		}
		f.comma = commaAt >= 0
		fields = append(fields, f)
	}
	for i := bodyStart; i < bodyEnd; i++ {
		if !mask[i] {
			continue
		}
		switch src[i] {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		case ',':
			if depth == 0 {
				flush(entryStart, i, i)
				entryStart = i + 1
			}
		}
	}
	if strings.TrimSpace(src[entryStart:bodyEnd]) != "" {
		flush(entryStart, bodyEnd, -1)
	}
	return fields
}

// parseField interprets src[start:end] as `name: value`. The separator is a
// single colon; a `::` path in the value never qualifies.
func parseField(src string, start, end int) (Field, bool) {
	// leading whitespace
	for start < end && (src[start] == ' ' || src[start] == '\t' || src[start] == '\n' || src[start] == '\r') {
		start++
	}
	nameEnd := start
	for nameEnd < end && isIdentByte(src[nameEnd]) {
		nameEnd++
	}
	if nameEnd == start {
		return Field{}, false
	}
	k := nameEnd
	for k < end && (src[k] == ' ' || src[k] == '\t') {
		k++
	}
	if k >= end || src[k] != ':' || (k+1 < end && src[k+1] == ':') {
		return Field{}, false
	}
	valStart := k + 1
	for valStart < end && (src[valStart] == ' ' || src[valStart] == '\t' || src[valStart] == '\n' || src[valStart] == '\r') {
		valStart++
	}
	valEnd := end
	for valEnd > valStart && (src[valEnd-1] == ' ' || src[valEnd-1] == '\t' || src[valEnd-1] == '\n' || src[valEnd-1] == '\r') {
		valEnd--
	}
	return Field{
		Name:     src[start:nameEnd],
		Value:    src[valStart:valEnd],
		start:    start,
		valStart: valStart,
		end:      valEnd,
	}, true
}

// indentAt returns the leading whitespace of the line containing offset.
func indentAt(src string, offset int) string {
	ls := strings.LastIndexByte(src[:offset], '\n') + 1
	le := ls
	for le < len(src) && (src[le] == ' ' || src[le] == '\t') {
		le++
	}
	return src[ls:le]
}
