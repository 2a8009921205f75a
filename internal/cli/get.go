package cli

import (
	"context"
	"fmt"
)

// RunGet shows the local snapshot of one entity.
func (c *Cli) RunGet(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: get <entityType> <id>")
	}

	record, err := c.engine.Entity(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to get entity: %w", err)
	}

	fmt.Fprintf(c.out, "Entity:     %s/%s\n", record.EntityType, record.ID())
	fmt.Fprintf(c.out, "Local ID:   %s\n", record.LocalID)
	if record.ServerID != "" {
		fmt.Fprintf(c.out, "Server ID:  %s\n", record.ServerID)
	}
	fmt.Fprintf(c.out, "Version:    %d\n", record.Version)
	fmt.Fprintf(c.out, "Pending:    %t\n", record.Pending)
	fmt.Fprintf(c.out, "Deleted:    %t\n", record.Deleted)
	fmt.Fprintf(c.out, "Data:       %s\n", record.Data)
	return nil
}

// RunList lists local snapshots of an entity type.
func (c *Cli) RunList(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: list <entityType>")
	}

	records, err := c.engine.Entities(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to list entities: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(c.out, "No entities found")
		return nil
	}

	for _, record := range records {
		marker := " "
		if record.Pending {
			marker = "*"
		}
		fmt.Fprintf(c.out, "%s %s  v%d  %s\n", marker, record.ID(), record.Version, record.Data)
	}
	fmt.Fprintln(c.out, "\n(* = written locally, syncing)")
	return nil
}
