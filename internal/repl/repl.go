// Package repl implements the interactive read-eval-print loop described
// in spec.md §6: each line is an independent run against a persistent
// global environment, errors reset per iteration, and `exit`/`quit`/`help`
// are control words consumed here rather than passed to the evaluator.
// Grounded on akashmaji946-go-mix's repl/repl.go (readline + fatih/color).
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/cwbudde/go-toy/pkg/toy"
)

var (
	promptColor = color.New(color.FgCyan)
	errorColor  = color.New(color.FgRed)
	bannerColor = color.New(color.FgGreen)
)

// Repl is an interactive session over a single, persistent Engine.
type Repl struct {
	Prompt  string
	Version string
	engine  *toy.Engine
}

// New creates a Repl that evaluates against a fresh Engine whose `print`
// output goes to writer.
func New(version string, writer io.Writer) *Repl {
	return &Repl{
		Prompt:  "toy> ",
		Version: version,
		engine:  toy.New(toy.WithOutput(writer)),
	}
}

// Start runs the loop until EOF, an error from readline, or the user
// types `exit` or `quit`.
func (r *Repl) Start(writer io.Writer) error {
	bannerColor.Fprintf(writer, "Toy %s — type 'exit' or 'quit' to leave, 'help' for usage.\n", r.Version)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			fmt.Fprintln(writer, "Goodbye!")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch line {
		case "exit", "quit":
			fmt.Fprintln(writer, "Goodbye!")
			return nil
		case "help":
			r.printHelp(writer)
			continue
		}

		rl.SaveHistory(line)
		r.evalLine(writer, line)
	}
}

// evalLine runs one REPL line. Per spec.md §6's REPL contract, an error
// here is reported and the loop continues — it never aborts the session
// and never carries state into the next line beyond what the engine's
// persistent globals already hold.
func (r *Repl) evalLine(writer io.Writer, line string) {
	source := line
	if !strings.HasSuffix(strings.TrimSpace(source), ";") &&
		!strings.HasSuffix(strings.TrimSpace(source), "}") {
		source += ";"
	}

	if _, err := r.engine.Eval(source); err != nil {
		errorColor.Fprintf(writer, "%s\n", err)
	}
}

func (r *Repl) printHelp(writer io.Writer) {
	fmt.Fprintln(writer, "Enter Toy statements, one per line. Commands: exit, quit, help.")
}
