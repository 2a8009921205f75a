package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clinicore/syncengine/internal/models"
)

// RunConflicts lists conflicts awaiting resolution.
func (c *Cli) RunConflicts(ctx context.Context) error {
	conflicts, err := c.engine.PendingConflicts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list conflicts: %w", err)
	}

	if len(conflicts) == 0 {
		fmt.Fprintln(c.out, "No pending conflicts")
		return nil
	}

	for _, record := range conflicts {
		fmt.Fprintf(c.out, "Conflict %s\n", record.ID)
		fmt.Fprintf(c.out, "  entity:         %s/%s\n", record.EntityType, record.EntityID)
		fmt.Fprintf(c.out, "  detected:       %s\n", record.Timestamp.Format(time.RFC3339))
		fmt.Fprintf(c.out, "  operation:      %s\n", record.OperationKind)
		fmt.Fprintf(c.out, "  local data:     %s\n", record.LocalData)
		fmt.Fprintf(c.out, "  server data:    %s\n", record.ServerData)
		fmt.Fprintf(c.out, "  server version: %d\n", record.ServerVersion)
	}
	return nil
}

// RunResolve settles one conflict.
func (c *Cli) RunResolve(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("usage: resolve <conflictID> <LOCAL_WINS|SERVER_WINS|MERGED> [mergedJSON]")
	}

	resolution := models.Resolution(args[1])
	var merged json.RawMessage
	if resolution == models.ResolutionMerged {
		if len(args) != 3 {
			return fmt.Errorf("MERGED requires the merged payload as JSON")
		}
		merged = json.RawMessage(args[2])
	}

	if err := c.engine.ResolveConflict(ctx, args[0], resolution, merged, "operator-cli"); err != nil {
		return fmt.Errorf("failed to resolve conflict: %w", err)
	}

	fmt.Fprintf(c.out, "Conflict %s resolved as %s\n", args[0], resolution)
	return nil
}
