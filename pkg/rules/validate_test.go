package rules

import (
	"strings"
	"testing"
)

func findError(errs []*ValidationError, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e.Message, substr) || strings.Contains(e.Path, substr) {
			return true
		}
	}
	return false
}

// TestValidateRejectsDuplicateIDs catches rule id collisions.
func TestValidateRejectsDuplicateIDs(t *testing.T) {
	rs := Default()
	rs.Rules = append(rs.Rules, rs.Rules[0])
	errs := Validate(rs)
	if !findError(errs, "duplicate rule id") {
		t.Errorf("expected duplicate id error, got %v", errs)
	}
}

// TestValidateRejectsIncompleteInsertRule: insert-fields needs literal,
// anchor and assignments.
func TestValidateRejectsIncompleteInsertRule(t *testing.T) {
	rs := &RuleSet{
		APIVersion: "retrofit/v0",
		Meta:       Meta{Name: "x"},
		Target:     Target{Dir: "tests", Suffix: ".rs"},
		Rules:      []Rule{{ID: "broken", Kind: KindInsertFields}},
	}
	errs := Validate(rs)
	for _, want := range []string{"literal type name", "anchor field", "at least one assignment"} {
		if !findError(errs, want) {
			t.Errorf("expected %q error, got %v", want, errs)
		}
	}
}

// TestValidateRejectsUnknownKind catches typos in kind.
func TestValidateRejectsUnknownKind(t *testing.T) {
	rs := &RuleSet{
		APIVersion: "retrofit/v0",
		Meta:       Meta{Name: "x"},
		Target:     Target{Dir: "tests", Suffix: ".rs"},
		Rules:      []Rule{{ID: "odd", Kind: "frobnicate"}},
	}
	if errs := Validate(rs); !findError(errs, "unknown rule kind") {
		t.Errorf("expected unknown kind error, got %v", errs)
	}
}

// TestValidateRejectsSelfReplace: from == to is always a mistake.
func TestValidateRejectsSelfReplace(t *testing.T) {
	rs := &RuleSet{
		APIVersion: "retrofit/v0",
		Meta:       Meta{Name: "x"},
		Target:     Target{Dir: "tests", Suffix: ".rs"},
		Rules:      []Rule{{ID: "noop", Kind: KindReplace, From: "same", To: "same"}},
	}
	if errs := Validate(rs); !findError(errs, "must differ") {
		t.Errorf("expected from/to error, got %v", errs)
	}
}

// TestValidateRejectsBadGuard: guards are compiled during validation.
func TestValidateRejectsBadGuard(t *testing.T) {
	rs := &RuleSet{
		APIVersion: "retrofit/v0",
		Meta:       Meta{Name: "x"},
		Target:     Target{Dir: "tests", Suffix: ".rs"},
		Rules:      []Rule{{ID: "g", Kind: KindReplace, From: "a", To: "b", When: "name +"}},
	}
	if errs := Validate(rs); !findError(errs, "compile guard") {
		t.Errorf("expected guard compile error, got %v", errs)
	}
}

// TestValidateRejectsBadTarget: empty dir and undotted suffix are caught.
func TestValidateRejectsBadTarget(t *testing.T) {
	rs := Default()
	rs.Target.Dir = ""
	rs.Target.Suffix = "rs"
	errs := Validate(rs)
	if !findError(errs, "must not be empty") {
		t.Errorf("expected empty dir error, got %v", errs)
	}
	if !findError(errs, "must start with a dot") {
		t.Errorf("expected suffix error, got %v", errs)
	}
}

// TestValidateFileStructuralFailure: unparseable YAML surfaces as a
// structural-phase error.
func TestValidateFileStructuralFailure(t *testing.T) {
	path := writeRuleSet(t, "apiVersion: [broken")
	rs, errs := ValidateFile(path)
	if rs != nil || len(errs) == 0 {
		t.Fatalf("expected structural failure, got rs=%v errs=%v", rs, errs)
	}
	if errs[0].Phase != "structural" {
		t.Errorf("phase = %q, want structural", errs[0].Phase)
	}
}

// TestValidateSemanticCatchesBadAPIVersion: the JSON Schema enum rejects
// unknown apiVersion values.
func TestValidateSemanticCatchesBadAPIVersion(t *testing.T) {
	rs := Default()
	rs.APIVersion = "retrofit/v999"
	errs := Validate(rs)
	found := false
	for _, e := range errs {
		if e.Phase == "semantic" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a semantic-phase error, got %v", errs)
	}
}
