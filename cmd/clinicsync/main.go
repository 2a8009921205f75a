package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinicore/syncengine/internal/cache"
	"github.com/clinicore/syncengine/internal/cli"
	"github.com/clinicore/syncengine/internal/clock"
	"github.com/clinicore/syncengine/internal/config"
	"github.com/clinicore/syncengine/internal/conflict"
	"github.com/clinicore/syncengine/internal/connectivity"
	"github.com/clinicore/syncengine/internal/engine"
	"github.com/clinicore/syncengine/internal/queue"
	"github.com/clinicore/syncengine/internal/remote"
	"github.com/clinicore/syncengine/internal/scheduler"
	"github.com/clinicore/syncengine/internal/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to YAML configuration file")
	serverURL := flag.String("server", "http://localhost:8080", "Sync server URL")
	apiToken := flag.String("token", "", "Sync server API token")
	dbPath := flag.String("db", "clinicsync.db", "Path to local database")
	clinicID := flag.String("clinic", "default", "Clinic identifier")
	interval := flag.Duration("interval", time.Minute, "Scheduled sync interval")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(os.Stderr)
		os.Exit(1)
	}
	command := args[0]

	cfg, err := loadConfig(*configPath, *serverURL, *apiToken, *dbPath, *clinicID, *interval)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()

	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	if cfg.Profile.MaxQueueDepth > 0 {
		boltStorage.SetQueueLimit(cfg.Profile.MaxQueueDepth)
	}

	apiClient := remote.NewClient(cfg.ServerURL, cfg.APIToken)
	clk := clock.New()

	cacheSvc := cache.NewService(boltStorage, clk, 0, logger)
	queueSvc := queue.NewService(boltStorage, queue.DefaultConfig(), logger)
	conflictSvc := conflict.NewService(boltStorage, logger)
	monitor := connectivity.NewMonitor(apiClient, connectivity.DefaultConfig(), clk, logger)
	sched := scheduler.New(
		cfg.Profile,
		queueSvc,
		conflictSvc,
		boltStorage,
		boltStorage,
		cacheSvc,
		apiClient,
		monitor,
		clk,
		logger,
	)
	eng := engine.NewService(cacheSvc, queueSvc, conflictSvc, boltStorage, boltStorage, clk, logger)

	commands := cli.New(eng, sched, monitor, os.Stdout)

	if err := runCommand(ctx, commands, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, commands *cli.Cli, command string, args []string) error {
	switch command {
	case "status":
		return commands.RunStatus(ctx)
	case "sync":
		return commands.RunSync(ctx)
	case "get":
		return commands.RunGet(ctx, args)
	case "list":
		return commands.RunList(ctx, args)
	case "conflicts":
		return commands.RunConflicts(ctx)
	case "resolve":
		return commands.RunResolve(ctx, args)
	case "exhausted":
		return commands.RunExhausted(ctx)
	case "run":
		runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return commands.RunDaemon(runCtx)
	default:
		cli.PrintUsage(os.Stderr)
		return fmt.Errorf("unknown command: %s", command)
	}
}

// loadConfig prefers the YAML file when given and falls back to flags.
func loadConfig(path, serverURL, apiToken, dbPath, clinicID string, interval time.Duration) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg := &config.Config{
		ServerURL: serverURL,
		APIToken:  apiToken,
		DBPath:    dbPath,
		Profile: config.Profile{
			ClinicID:       clinicID,
			IntervalMillis: interval.Milliseconds(),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printVersion() {
	fmt.Printf("ClinicSync Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
