// Package rules defines the Go struct types for the retrofit rule-set YAML
// schema and provides strict YAML parsing.
package rules

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule kinds understood by the rewrite pipeline.
const (
	KindInsertFields = "insert-fields"
	KindWrapSequence = "wrap-sequence"
	KindReplace      = "replace"
	KindStripNested  = "strip-nested"
)

// RuleSet is the top-level document describing how a directory of
// generated sources is patched.
type RuleSet struct {
	APIVersion string `yaml:"apiVersion" json:"apiVersion" jsonschema:"required,enum=retrofit/v0"`
	Meta       Meta   `yaml:"meta"       json:"meta"       jsonschema:"required"`
	Target     Target `yaml:"target"     json:"target"     jsonschema:"required"`
	Rules      []Rule `yaml:"rules"      json:"rules"      jsonschema:"required"`
}

// Meta carries rule-set identity for reports and validation messages.
type Meta struct {
	Name        string `yaml:"name"                  json:"name" jsonschema:"required"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Target names the directory the patcher scans and the file suffix it
// selects. The scan is non-recursive.
type Target struct {
	Dir    string `yaml:"dir"    json:"dir"    jsonschema:"required"`
	Suffix string `yaml:"suffix" json:"suffix" jsonschema:"required"`
}

// Rule is a single rewrite pass. Which fields apply depends on Kind:
//
//	insert-fields: Literal, After, optional Before, Insert
//	wrap-sequence: Field, Type
//	replace:       From, To
//	strip-nested:  Literal, Field, Strip
//
// When is an optional expr guard evaluated per file (env: name, path, dir);
// a rule whose guard is false is skipped for that file.
type Rule struct {
	ID          string        `yaml:"id"                    json:"id"   jsonschema:"required"`
	Kind        string        `yaml:"kind"                  json:"kind" jsonschema:"required,enum=insert-fields,enum=wrap-sequence,enum=replace,enum=strip-nested"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Literal     string        `yaml:"literal,omitempty"     json:"literal,omitempty"`
	After       string        `yaml:"after,omitempty"       json:"after,omitempty"`
	Before      string        `yaml:"before,omitempty"      json:"before,omitempty"`
	Insert      []FieldAssign `yaml:"insert,omitempty"      json:"insert,omitempty"`
	Field       string        `yaml:"field,omitempty"       json:"field,omitempty"`
	Type        string        `yaml:"type,omitempty"        json:"type,omitempty"`
	From        string        `yaml:"from,omitempty"        json:"from,omitempty"`
	To          string        `yaml:"to,omitempty"          json:"to,omitempty"`
	Strip       []string      `yaml:"strip,omitempty"       json:"strip,omitempty"`
	When        string        `yaml:"when,omitempty"        json:"when,omitempty"`
}

// FieldAssign is one field assignment an insert-fields rule adds.
type FieldAssign struct {
	Field string `yaml:"field" json:"field" jsonschema:"required"`
	Value string `yaml:"value" json:"value" jsonschema:"required"`
}

// LoadFile reads and parses a rule-set YAML file with strict unknown-field
// rejection (yaml.v3 KnownFields). Returns the parsed RuleSet or an error.
func LoadFile(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rule set: %w", err)
	}
	defer f.Close()
	rs, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rs, nil
}

// Load parses a rule-set document from r.
func Load(r io.Reader) (*RuleSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true) // reject unknown fields
	var rs RuleSet
	if err := dec.Decode(&rs); err != nil {
		return nil, err
	}
	return &rs, nil
}
