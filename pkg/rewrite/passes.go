package rewrite

import "strings"

// FieldAssign is one `name: value` assignment an insert pass adds to a
// literal.
type FieldAssign struct {
	Field string
	Value string
}

// InsertFields adds the missing assignments to every `literal { ... }`
// occurrence in src. Assignments land after the `after` anchor field, or
// immediately before the `before` terminal field when one is named. A
// literal that already carries all of the assignments, or that has no
// anchor, is left alone — so the pass is idempotent and non-matching
// input passes through unchanged.
//
// Each edit is applied and the source re-scanned, which keeps offsets
// valid even when literals nest.
func InsertFields(src, literal, after, before string, adds []FieldAssign) string {
	for {
		out, ok := insertOnce(src, literal, after, before, adds)
		if !ok {
			return src
		}
		src = out
	}
}

func insertOnce(src, literal, after, before string, adds []FieldAssign) (string, bool) {
	for _, lit := range findLiterals(src, literal) {
		present := make(map[string]bool, len(lit.Fields))
		for _, f := range lit.Fields {
			present[f.Name] = true
		}
		var missing []FieldAssign
		for _, a := range adds {
			if !present[a.Field] {
				missing = append(missing, a)
			}
		}
		if len(missing) == 0 {
			continue
		}
		anchor := lit.field(after)
		if anchor == nil {
			continue
		}
		multiline := strings.Contains(src[lit.BodyStart:lit.BodyEnd], "\n")

		if before != "" {
			term := lit.field(before)
			if term == nil || term.start <= anchor.start {
				continue
			}
			var b strings.Builder
			if multiline {
				indent := indentAt(src, term.start)
				for _, a := range missing {
					b.WriteString(a.Field + ": " + a.Value + ",\n" + indent)
				}
			} else {
				for _, a := range missing {
					b.WriteString(a.Field + ": " + a.Value + ", ")
				}
			}
			return src[:term.start] + b.String() + src[term.start:], true
		}

		// no terminal field: splice in right after the anchor's comma
		pos := anchor.end
		var b strings.Builder
		if !anchor.comma {
			b.WriteString(",")
		} else {
			pos = strings.IndexByte(src[anchor.end:lit.BodyEnd], ',') + anchor.end + 1
		}
		if multiline {
			indent := indentAt(src, anchor.start)
			for _, a := range missing {
				b.WriteString("\n" + indent + a.Field + ": " + a.Value + ",")
			}
		} else {
			for _, a := range missing {
				b.WriteString(" " + a.Field + ": " + a.Value + ",")
			}
		}
		return src[:pos] + b.String() + src[pos:], true
	}
	return src, false
}

func (l *Literal) field(name string) *Field {
	for i := range l.Fields {
		if l.Fields[i].Name == name {
			return &l.Fields[i]
		}
	}
	return nil
}

// WrapSequence rewrites `field: Some(typeName { ... })` into
// `field: Some(vec![typeName { ... }])`, matching the literal's closing
// brace so the `]` lands immediately before the field's own `)`. The bare
// form `field: Some(ident)` becomes `field: Some(vec![ident])`. Values
// already wrapped in vec![ are recognized and skipped.
func WrapSequence(src, field, typeName string) string {
	for {
		out, ok := wrapOnce(src, field, typeName)
		if !ok {
			return src
		}
		src = out
	}
}

func wrapOnce(src, field, typeName string) (string, bool) {
	mask := codeMask(src)
	for i := 0; ; {
		j := strings.Index(src[i:], field)
		if j < 0 {
			break
		}
		at := i + j
		i = at + len(field)
		if !mask[at] {
			continue
		}
		if at > 0 && isIdentByte(src[at-1]) {
			continue
		}
		k := at + len(field)
		if k < len(src) && isIdentByte(src[k]) {
			continue
		}
		k = skipSpace(src, k)
		if k >= len(src) || src[k] != ':' || (k+1 < len(src) && src[k+1] == ':') {
			continue
		}
		k = skipSpace(src, k+1)
		if !strings.HasPrefix(src[k:], "Some") {
			continue
		}
		k = skipSpace(src, k+len("Some"))
		if k >= len(src) || src[k] != '(' {
			continue
		}
		p := skipSpace(src, k+1)
		if strings.HasPrefix(src[p:], "vec![") {
			continue // already a sequence
		}

		// open literal form: Some(Type { ... })
		if strings.HasPrefix(src[p:], typeName) &&
			(p+len(typeName) >= len(src) || !isIdentByte(src[p+len(typeName)])) {
			q := skipSpace(src, p+len(typeName))
			if q < len(src) && src[q] == '{' {
				closeBrace := matchDelim(src, mask, q)
				if closeBrace >= 0 {
					r := skipSpace(src, closeBrace+1)
					if r < len(src) && src[r] == ')' {
						return src[:p] + "vec![" + src[p:r] + "]" + src[r:], true
					}
				}
			}
			continue
		}

		// bare identifier form: Some(ident)
		idEnd := p
		for idEnd < len(src) && isIdentByte(src[idEnd]) {
			idEnd++
		}
		if idEnd == p {
			continue
		}
		r := skipSpace(src, idEnd)
		if r < len(src) && src[r] == ')' {
			return src[:p] + "vec![" + src[p:idEnd] + "]" + src[idEnd:], true
		}
	}
	return src, false
}

func skipSpace(src string, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t' || src[i] == '\n' || src[i] == '\r') {
		i++
	}
	return i
}

// StripNested removes stray `name: None,` lines that a previous bad patch
// run left inside the named field's value block.
func StripNested(src, literal, field string, strip []string) string {
	for {
		out, ok := stripOnce(src, literal, field, strip)
		if !ok {
			return src
		}
		src = out
	}
}

func stripOnce(src, literal, field string, strip []string) (string, bool) {
	stray := make(map[string]bool, len(strip))
	for _, s := range strip {
		stray[s+": None,"] = true
	}
	for _, lit := range findLiterals(src, literal) {
		f := lit.field(field)
		if f == nil {
			continue
		}
		seg := src[f.valStart:f.end]
		if !strings.Contains(seg, "\n") {
			continue
		}
		lines := strings.Split(seg, "\n")
		kept := lines[:0]
		removed := false
		for _, line := range lines {
			if stray[strings.TrimSpace(line)] {
				removed = true
				continue
			}
			kept = append(kept, line)
		}
		if removed {
			return src[:f.valStart] + strings.Join(kept, "\n") + src[f.end:], true
		}
	}
	return src, false
}
