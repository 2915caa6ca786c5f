package rules

// Default returns the built-in rule set: the fixes the ag-ui test corpus
// needed after Message grew three optional fields, RunAgentInput grew
// forwarded_props, and the context field changed from Option<Context> to
// Option<Vec<Context>>. Running retrofit with no rule-set file uses this.
func Default() *RuleSet {
	return &RuleSet{
		APIVersion: "retrofit/v0",
		Meta: Meta{
			Name:        "ag-ui-wasm-tests",
			Description: "Bring generated test sources up to the current Message/RunAgentInput shape",
		},
		Target: Target{Dir: "tests", Suffix: ".rs"},
		Rules: []Rule{
			{
				ID:          "message-missing-fields",
				Kind:        KindInsertFields,
				Description: "Message literals gained name, tool_calls and function_call",
				Literal:     "Message",
				After:       "metadata",
				Before:      "created_at",
				Insert: []FieldAssign{
					{Field: "name", Value: "None"},
					{Field: "tool_calls", Value: "None"},
					{Field: "function_call", Value: "None"},
				},
			},
			{
				ID:          "runinput-forwarded-props",
				Kind:        KindInsertFields,
				Description: "RunAgentInput literals gained forwarded_props",
				Literal:     "RunAgentInput",
				After:       "state",
				Insert: []FieldAssign{
					{Field: "forwarded_props", Value: "None"},
				},
			},
			{
				ID:          "context-to-vec",
				Kind:        KindWrapSequence,
				Description: "context changed cardinality from one to many",
				Field:       "context",
				Type:        "Context",
			},
			{
				ID:          "context-index-access",
				Kind:        KindReplace,
				Description: "reads of the now-plural context index its first element",
				From:        ".context.as_ref().unwrap().user_id",
				To:          ".context.as_ref().unwrap()[0].user_id",
			},
		},
	}
}
