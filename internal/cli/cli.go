// Package cli implements the clinicsync command surface over the
// engine facade: operator-facing status, manual sync, and conflict
// resolution.
package cli

import (
	"fmt"
	"io"

	"github.com/clinicore/syncengine/internal/connectivity"
	"github.com/clinicore/syncengine/internal/engine"
	"github.com/clinicore/syncengine/internal/scheduler"
)

// Cli bundles the engine services the commands operate on
type Cli struct {
	engine  engine.Service
	sched   *scheduler.Scheduler
	monitor connectivity.Monitor
	out     io.Writer
}

// New creates the command dispatcher
func New(eng engine.Service, sched *scheduler.Scheduler, monitor connectivity.Monitor, out io.Writer) *Cli {
	return &Cli{
		engine:  eng,
		sched:   sched,
		monitor: monitor,
		out:     out,
	}
}

// PrintUsage prints the command summary
func PrintUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: clinicsync [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  status                                    Show sync state and queue depth")
	fmt.Fprintln(w, "  sync                                      Run one drain pass now")
	fmt.Fprintln(w, "  get <entityType> <id>                     Show the local snapshot of an entity")
	fmt.Fprintln(w, "  list <entityType>                         List local snapshots of a type")
	fmt.Fprintln(w, "  conflicts                                 List pending conflicts")
	fmt.Fprintln(w, "  resolve <id> <resolution> [mergedJSON]    Resolve a conflict (LOCAL_WINS|SERVER_WINS|MERGED)")
	fmt.Fprintln(w, "  exhausted                                 List operations needing attention")
	fmt.Fprintln(w, "  run                                       Run the scheduler until interrupted")
}
