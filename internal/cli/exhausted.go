package cli

import (
	"context"
	"fmt"
	"time"
)

// RunExhausted lists queued operations that ran out of retries or were
// rejected by the server and now need operator attention.
func (c *Cli) RunExhausted(ctx context.Context) error {
	ops, err := c.engine.ExhaustedOperations(ctx)
	if err != nil {
		return fmt.Errorf("failed to list exhausted operations: %w", err)
	}

	if len(ops) == 0 {
		fmt.Fprintln(c.out, "No exhausted operations")
		return nil
	}

	for _, op := range ops {
		fmt.Fprintf(c.out, "Operation %d\n", op.ID)
		fmt.Fprintf(c.out, "  kind:       %s %s\n", op.Kind, op.EntityType)
		fmt.Fprintf(c.out, "  entity:     %s\n", op.EntityRef.LocalID)
		fmt.Fprintf(c.out, "  queued:     %s\n", op.Timestamp.Format(time.RFC3339))
		fmt.Fprintf(c.out, "  retries:    %d\n", op.RetryCount)
		fmt.Fprintf(c.out, "  last error: %s\n", op.LastError)
	}
	return nil
}
