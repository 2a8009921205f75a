package cli

import (
	"context"
	"fmt"
	"sync"
)

// RunDaemon runs the connectivity monitor and the sync scheduler until
// the context is cancelled.
func (c *Cli) RunDaemon(ctx context.Context) error {
	fmt.Fprintln(c.out, "Sync scheduler running, press Ctrl+C to stop")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.monitor.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		c.sched.Run(ctx)
	}()
	wg.Wait()

	fmt.Fprintln(c.out, "Sync scheduler stopped")
	return nil
}
