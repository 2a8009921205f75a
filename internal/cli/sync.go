package cli

import (
	"context"
	"fmt"
)

// RunSync runs one drain pass immediately and reports the result.
func (c *Cli) RunSync(ctx context.Context) error {
	result, err := c.sched.DrainOnce(ctx)
	if err != nil {
		return fmt.Errorf("drain pass failed: %w", err)
	}

	fmt.Fprintln(c.out, "Drain pass completed:")
	fmt.Fprintf(c.out, "  sent:      %d\n", result.Sent)
	fmt.Fprintf(c.out, "  confirmed: %d\n", result.Confirmed)
	fmt.Fprintf(c.out, "  conflicts: %d\n", result.Conflicts)
	fmt.Fprintf(c.out, "  failed:    %d\n", result.Failed)
	fmt.Fprintf(c.out, "  rejected:  %d\n", result.Rejected)
	fmt.Fprintf(c.out, "  deferred:  %d\n", result.Deferred)
	return nil
}
