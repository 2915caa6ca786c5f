package rewrite

import (
	"fmt"
	"strings"

	"github.com/ormasoftchile/retrofit/pkg/rules"
)

// Pass is one compiled rule: a pure text transformation plus an optional
// per-file guard.
type Pass struct {
	ID    string
	apply func(string) string
	guard *guard
}

// Pipeline applies its passes in rule order. Order matters: rule sets are
// written assuming earlier passes run first, and interactions between
// passes on input outside the known corpus are otherwise unspecified.
type Pipeline struct {
	passes []Pass
}

// NewPipeline compiles a validated rule set into an executable pipeline.
func NewPipeline(rs *rules.RuleSet) (*Pipeline, error) {
	p := &Pipeline{passes: make([]Pass, 0, len(rs.Rules))}
	for _, r := range rs.Rules {
		pass := Pass{ID: r.ID}
		switch r.Kind {
		case rules.KindInsertFields:
			adds := make([]FieldAssign, len(r.Insert))
			for i, a := range r.Insert {
				adds[i] = FieldAssign{Field: a.Field, Value: a.Value}
			}
			literal, after, before := r.Literal, r.After, r.Before
			pass.apply = func(src string) string {
				return InsertFields(src, literal, after, before, adds)
			}
		case rules.KindWrapSequence:
			field, typeName := r.Field, r.Type
			pass.apply = func(src string) string {
				return WrapSequence(src, field, typeName)
			}
		case rules.KindReplace:
			from, to := r.From, r.To
			pass.apply = func(src string) string {
				return strings.ReplaceAll(src, from, to)
			}
		case rules.KindStripNested:
			literal, field, strip := r.Literal, r.Field, r.Strip
			pass.apply = func(src string) string {
				return StripNested(src, literal, field, strip)
			}
		default:
			return nil, fmt.Errorf("rule %s: unknown kind %q", r.ID, r.Kind)
		}
		if r.When != "" {
			g, err := compileGuard(r.When)
			if err != nil {
				return nil, fmt.Errorf("rule %s: %w", r.ID, err)
			}
			pass.guard = g
		}
		p.passes = append(p.passes, pass)
	}
	return p, nil
}

// Apply runs every pass over src in order and returns the transformed text
// together with the ids of the passes that changed it. A pass whose guard
// is false for this file is skipped; a pass whose pattern finds nothing
// leaves the text unchanged, which is not an error.
func (p *Pipeline) Apply(file FileInfo, src string) (string, []string, error) {
	var applied []string
	for _, pass := range p.passes {
		if pass.guard != nil {
			ok, err := pass.guard.eval(file)
			if err != nil {
				return "", nil, fmt.Errorf("rule %s: %w", pass.ID, err)
			}
			if !ok {
				continue
			}
		}
		out := pass.apply(src)
		if out != src {
			applied = append(applied, pass.ID)
		}
		src = out
	}
	return src, applied, nil
}

// Len reports the number of compiled passes.
func (p *Pipeline) Len() int { return len(p.passes) }
