package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/shiftclock/internal/cache"
	"github.com/alexanderramin/shiftclock/internal/cli"
	"github.com/alexanderramin/shiftclock/internal/config"
	"github.com/alexanderramin/shiftclock/internal/db"
	"github.com/alexanderramin/shiftclock/internal/domain"
	"github.com/alexanderramin/shiftclock/internal/observability"
	"github.com/alexanderramin/shiftclock/internal/repository"
	"github.com/alexanderramin/shiftclock/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	policy, err := config.LoadPolicy(cfg.CalendarPath)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	agentRepo := repository.NewSQLiteAgentRepo(database)
	activityRepo := repository.NewSQLiteActivityRepo(database)
	holidayRepo := repository.NewSQLiteHolidayRepo(database)
	callRepo := repository.NewSQLiteCallRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Reports read from the hosted backend when one is configured; writes
	// always go to the local store.
	var source repository.ActivitySource = activityRepo
	if cfg.PostgresURL != "" {
		pg, err := repository.OpenPGActivitySource(ctx, cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer pg.Close()
		source = pg
	}

	// Warnings always reach stderr; per-use-case logging is opt-in.
	logger := service.NewLogger(os.Stderr, slog.LevelWarn)
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		logger = service.NewLogger(os.Stderr, slog.LevelInfo)
		observer = service.NewLogUseCaseObserver(logger)
	}

	spans := cache.New[[]domain.ActivitySpan](cfg.CacheTTL,
		cache.WithHooks(observability.RecordCacheHit, observability.RecordCacheMiss))

	holidays := service.NewHolidayService(holidayRepo, cfg.Location(), policy)
	app := &cli.App{
		Agents:   service.NewAgentService(agentRepo, spans, observer),
		Activity: service.NewActivityService(activityRepo, uow, spans, observer),
		Holidays: holidays,
		Attendance: service.NewAttendanceService(agentRepo, source, holidays, spans, service.AttendanceOptions{
			Policy:    cfg.ReconcilePolicy(),
			LateGrace: cfg.LateGrace,
			Logger:    logger,
		}, observer),
		Calls: service.NewCallService(callRepo, agentRepo, holidays, uow, observer),
		Dump: func(ctx context.Context, w io.Writer) error {
			return db.Dump(ctx, database, w)
		},
		Location:    cfg.Location(),
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

