// Command report sends the daily order report to every admin.
//
//	report [--date=YYYY-MM-DD]
//
// The date defaults to yesterday in the report timezone.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/notify"
	"storefront/internal/report"
	"storefront/internal/repository"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	dateFlag := fs.String("date", "", "report date as YYYY-MM-DD (default: yesterday)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	loc := cfg.Report.Location()

	date, err := resolveDate(*dateFlag, time.Now(), loc)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	runner := report.NewRunner(
		report.NewBuilder(orderRepo, loc, logger),
		userRepo,
		notify.NewMailer(cfg.SMTP, logger),
		report.NewArchiver(ctx, cfg.S3, cfg.Report.ArchiveDir, logger),
		logger,
	)

	daily, err := runner.Run(ctx, date)
	if err != nil {
		return fmt.Errorf("daily report for %s failed: %w", date.Format(time.DateOnly), err)
	}

	logger.Info().
		Str("date", daily.Date).
		Int("total_orders", daily.TotalOrders).
		Int64("total_revenue", daily.TotalRevenue).
		Msg("daily report completed")
	return nil
}

// resolveDate returns the requested report day, or yesterday when raw is empty.
func resolveDate(raw string, now time.Time, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return report.Yesterday(now, loc), nil
	}
	return report.ParseDate(raw, loc)
}
