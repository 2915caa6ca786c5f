package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ormasoftchile/retrofit/pkg/patch"
	"github.com/ormasoftchile/retrofit/pkg/report"
)

// runInteractiveFix walks the pending changes one file at a time, asking
// before each write. Commands: yes, no, diff, all, quit.
func runInteractiveFix(runner *patch.Runner) error {
	_, pending, err := runner.Preview()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("0 file(s) updated — everything is up to date")
		return nil
	}

	completer := readline.NewPrefixCompleter(
		readline.PcItem("yes"),
		readline.PcItem("no"),
		readline.PcItem("diff"),
		readline.PcItem("all"),
		readline.PcItem("quit"),
	)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	written := 0
	applyAll := false
	for _, p := range pending {
		if applyAll {
			if err := patch.WriteFile(p.Path, p.New); err != nil {
				return err
			}
			fmt.Printf("Updated %s\n", p.Name)
			written++
			continue
		}

		fmt.Printf("%s — rules: %s\n", p.Name, strings.Join(p.Passes, ", "))
		rl.SetPrompt(fmt.Sprintf("apply %s? [yes/no/diff/all/quit] > ", p.Name))

	prompt:
		for {
			line, err := rl.Readline()
			if err != nil {
				if err == readline.ErrInterrupt || err == io.EOF {
					fmt.Printf("%d of %d file(s) updated\n", written, len(pending))
					return nil
				}
				return err
			}
			switch strings.TrimSpace(line) {
			case "yes", "y":
				if err := patch.WriteFile(p.Path, p.New); err != nil {
					return err
				}
				fmt.Printf("Updated %s\n", p.Name)
				written++
				break prompt
			case "no", "n", "":
				break prompt
			case "diff", "d":
				text, err := report.UnifiedDiff(p)
				if err != nil {
					return err
				}
				fmt.Print(text)
			case "all", "a":
				if err := patch.WriteFile(p.Path, p.New); err != nil {
					return err
				}
				fmt.Printf("Updated %s\n", p.Name)
				written++
				applyAll = true
				break prompt
			case "quit", "q":
				fmt.Printf("%d of %d file(s) updated\n", written, len(pending))
				return nil
			default:
				fmt.Println("Commands: yes, no, diff, all, quit")
			}
		}
	}
	fmt.Printf("%d of %d file(s) updated\n", written, len(pending))
	return nil
}
