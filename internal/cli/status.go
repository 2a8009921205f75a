package cli

import (
	"context"
	"fmt"
)

// RunStatus prints the sync state an operator needs to distinguish
// "written locally, syncing" from "needs attention" from "conflicts".
func (c *Cli) RunStatus(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== Sync Status ===")
	fmt.Fprintf(c.out, "Scheduler state: %s\n", c.sched.State())

	pending, err := c.engine.PendingCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending count: %w", err)
	}
	fmt.Fprintf(c.out, "Pending operations: %d\n", pending)

	exhausted, err := c.engine.ExhaustedOperations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get exhausted operations: %w", err)
	}
	fmt.Fprintf(c.out, "Operations needing attention: %d\n", len(exhausted))

	conflicts, err := c.engine.PendingConflicts(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending conflicts: %w", err)
	}
	fmt.Fprintf(c.out, "Pending conflicts: %d\n", len(conflicts))

	return nil
}
