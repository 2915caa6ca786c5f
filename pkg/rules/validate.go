package rules

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// ValidationError represents a single validation error with location context.
type ValidationError struct {
	Phase    string `json:"phase"` // structural, semantic, domain
	Path     string `json:"path"`  // JSON-path-like location (e.g., "rules[2].insert")
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Phase, e.Path, e.Message)
}

// ValidateFile performs the full 3-phase validation pipeline on a rule-set file.
// Phase 1: Structural (strict YAML decode)
// Phase 2: Semantic (JSON Schema validation)
// Phase 3: Domain (custom Go rules)
func ValidateFile(path string) (*RuleSet, []*ValidationError) {
	rs, err := LoadFile(path)
	if err != nil {
		return nil, []*ValidationError{{
			Phase:    "structural",
			Message:  err.Error(),
			Severity: "error",
		}}
	}
	return rs, Validate(rs)
}

// Validate runs the semantic and domain phases on an already-loaded rule set.
func Validate(rs *RuleSet) []*ValidationError {
	var all []*ValidationError
	all = append(all, validateSemantic(rs)...)
	all = append(all, validateDomain(rs)...)
	return all
}

// validateSemantic validates the rule set against the generated JSON Schema.
func validateSemantic(rs *RuleSet) []*ValidationError {
	fatal := func(msg string) []*ValidationError {
		return []*ValidationError{{Phase: "semantic", Message: msg, Severity: "error"}}
	}

	data, err := json.Marshal(rs)
	if err != nil {
		return fatal(fmt.Sprintf("marshal for schema validation: %v", err))
	}
	schemaJSON, err := GenerateJSONSchema()
	if err != nil {
		return fatal(fmt.Sprintf("generate schema: %v", err))
	}
	var schemaDoc interface{}
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return fatal(fmt.Sprintf("unmarshal schema: %v", err))
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource("ruleset-v0.json", schemaDoc); err != nil {
		return fatal(fmt.Sprintf("add schema resource: %v", err))
	}
	sch, err := c.Compile("ruleset-v0.json")
	if err != nil {
		return fatal(fmt.Sprintf("compile schema: %v", err))
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fatal(fmt.Sprintf("unmarshal document: %v", err))
	}

	if err := sch.Validate(doc); err != nil {
		var errs []*ValidationError
		if ve, ok := err.(*sjsonschema.ValidationError); ok {
			for _, cause := range flattenValidationErrors(ve) {
				errs = append(errs, &ValidationError{
					Phase:    "semantic",
					Path:     strings.Join(cause.InstanceLocation, "/"),
					Message:  fmt.Sprintf("%v", cause.ErrorKind),
					Severity: "error",
				})
			}
		} else {
			errs = append(errs, &ValidationError{
				Phase:    "semantic",
				Message:  err.Error(),
				Severity: "error",
			})
		}
		return errs
	}
	return nil
}

// flattenValidationErrors recursively collects all leaf validation errors.
func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}

// validateDomain applies the kind-specific rules the schema alone can't
// express.
func validateDomain(rs *RuleSet) []*ValidationError {
	var errs []*ValidationError
	add := func(path, msg string) {
		errs = append(errs, &ValidationError{
			Phase:    "domain",
			Path:     path,
			Message:  msg,
			Severity: "error",
		})
	}

	if rs.Target.Dir == "" {
		add("target/dir", "target directory must not be empty")
	}
	if rs.Target.Suffix != "" && !strings.HasPrefix(rs.Target.Suffix, ".") {
		add("target/suffix", fmt.Sprintf("suffix %q must start with a dot", rs.Target.Suffix))
	}
	if len(rs.Rules) == 0 {
		add("rules", "at least one rule is required")
	}

	seen := make(map[string]bool)
	for i, r := range rs.Rules {
		at := func(field string) string { return fmt.Sprintf("rules[%d]/%s", i, field) }
		if r.ID == "" {
			add(at("id"), "rule id must not be empty")
		} else if seen[r.ID] {
			add(at("id"), fmt.Sprintf("duplicate rule id %q", r.ID))
		} else {
			seen[r.ID] = true
		}

		switch r.Kind {
		case KindInsertFields:
			if r.Literal == "" {
				add(at("literal"), "insert-fields requires a literal type name")
			}
			if r.After == "" {
				add(at("after"), "insert-fields requires an anchor field")
			}
			if len(r.Insert) == 0 {
				add(at("insert"), "insert-fields requires at least one assignment")
			}
			for j, a := range r.Insert {
				if a.Field == "" || a.Value == "" {
					add(fmt.Sprintf("rules[%d]/insert[%d]", i, j), "assignment needs field and value")
				}
			}
		case KindWrapSequence:
			if r.Field == "" {
				add(at("field"), "wrap-sequence requires a field name")
			}
			if r.Type == "" {
				add(at("type"), "wrap-sequence requires a payload type name")
			}
		case KindReplace:
			if r.From == "" {
				add(at("from"), "replace requires a from string")
			}
			if r.From == r.To {
				add(at("to"), "replace from and to must differ")
			}
		case KindStripNested:
			if r.Literal == "" || r.Field == "" {
				add(at("literal"), "strip-nested requires a literal type and field name")
			}
			if len(r.Strip) == 0 {
				add(at("strip"), "strip-nested requires at least one field name to strip")
			}
		default:
			add(at("kind"), fmt.Sprintf("unknown rule kind %q", r.Kind))
		}

		if r.When != "" {
			env := map[string]any{"name": "", "path": "", "dir": ""}
			if _, err := expr.Compile(r.When, expr.Env(env), expr.AsBool()); err != nil {
				add(at("when"), fmt.Sprintf("compile guard: %v", err))
			}
		}
	}
	return errs
}
