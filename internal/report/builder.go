package report

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// Builder assembles a DailyReport from the orders of one day.
type Builder struct {
	orders OrderSource
	loc    *time.Location
	logger zerolog.Logger
}

// NewBuilder creates a builder whose days are counted in loc.
func NewBuilder(orders OrderSource, loc *time.Location, logger zerolog.Logger) *Builder {
	return &Builder{
		orders: orders,
		loc:    loc,
		logger: logger.With().Str("component", "report_builder").Logger(),
	}
}

// Build returns the report for date.
func (b *Builder) Build(ctx context.Context, date time.Time) (*model.DailyReport, error) {
	start, end := dayBounds(date, b.loc)

	orders, err := b.orders.ListCreatedBetween(ctx, start, end)
	if err != nil {
		b.logger.Error().Err(err).Time("start", start).Time("end", end).Msg("failed to load orders for report")
		return nil, fmt.Errorf("failed to load orders for %s: %w", start.Format(time.DateOnly), err)
	}

	report := &model.DailyReport{
		Date:   start.Format(time.DateOnly),
		Orders: make([]model.ReportLine, 0, len(orders)),
	}
	for _, o := range orders {
		report.TotalOrders++
		report.TotalRevenue += o.TotalPrice
		report.Orders = append(report.Orders, model.ReportLine{
			ID:           o.ID,
			TotalPrice:   o.TotalPrice,
			Status:       o.Status,
			CreatedAt:    o.CreatedAt.In(b.loc).Format(time.TimeOnly),
			CustomerName: o.CustomerName,
		})
	}

	b.logger.Info().
		Str("date", report.Date).
		Int("total_orders", report.TotalOrders).
		Int64("total_revenue", report.TotalRevenue).
		Msg("daily report built")

	return report, nil
}
