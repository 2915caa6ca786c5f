//go:build ignore

package main

import (
	"fmt"
	"os"

	"github.com/ormasoftchile/retrofit/pkg/rules"
)

func main() {
	data, err := rules.GenerateJSONSchema()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile("schemas/ruleset-v0.json", data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("wrote schemas/ruleset-v0.json")
}
