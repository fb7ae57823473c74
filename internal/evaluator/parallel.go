package evaluator

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/go-toy/internal/ast"
)

// execParallel runs every statement in s.Statements on its own goroutine,
// all sharing the enclosing lexical environment (spec.md §5: "Statements
// observe the enclosing lexical environment"). A branch failure is
// reported, not raised: it never cancels its siblings, and the block still
// waits for all of them before returning (spec.md §7's parallel carve-out).
func (e *Evaluator) execParallel(s *ast.Parallel) error {
	var g errgroup.Group

	for _, stmt := range s.Statements {
		stmt := stmt
		g.Go(func() error {
			branch := &Evaluator{
				Globals: e.Globals,
				current: e.current,
				Out:     e.Out,
				exts:    e.exts,
			}
			_, err := branch.exec(stmt)
			if err != nil {
				fmt.Fprintf(e.Out, "Error in parallel execution: %s\n", err)
			}
			return nil
		})
	}

	return g.Wait()
}
