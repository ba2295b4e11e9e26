package report

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/notify"

	"github.com/rs/zerolog"
)

// Runner builds the report for a day, mails it to every active admin and
// archives it.
type Runner struct {
	builder  *Builder
	admins   AdminSource
	mailer   notify.Mailer
	archiver Archiver
	logger   zerolog.Logger
}

// NewRunner creates a runner. archiver may be nil to skip archiving.
func NewRunner(builder *Builder, admins AdminSource, mailer notify.Mailer, archiver Archiver, logger zerolog.Logger) *Runner {
	return &Runner{
		builder:  builder,
		admins:   admins,
		mailer:   mailer,
		archiver: archiver,
		logger:   logger.With().Str("component", "report_runner").Logger(),
	}
}

// Run sends the report for date. A failed delivery to one admin is logged
// and does not stop the others. Archive failures are logged only.
func (r *Runner) Run(ctx context.Context, date time.Time) (*model.DailyReport, error) {
	report, err := r.builder.Build(ctx, date)
	if err != nil {
		return nil, err
	}

	users, err := r.admins.ListByRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to load admins: %w", err)
	}

	admins := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.Status == model.UserStatusActive {
			admins = append(admins, u)
		}
	}
	if len(admins) == 0 {
		r.logger.Error().Str("date", report.Date).Msg("no admin users found")
		return report, ErrNoAdmins
	}

	if r.archiver != nil {
		if location, err := r.archiver.Archive(ctx, report); err != nil {
			r.logger.Error().Err(err).Str("date", report.Date).Msg("failed to archive report")
		} else {
			r.logger.Info().Str("date", report.Date).Str("location", location).Msg("report archived")
		}
	}

	sent := 0
	for _, admin := range admins {
		if err := r.mailer.Send(ctx, Message(report, admin)); err != nil {
			r.logger.Error().Err(err).Int64("admin_id", admin.ID).Str("email", admin.Email).Msg("failed to send report")
			continue
		}
		sent++
	}

	r.logger.Info().
		Str("date", report.Date).
		Int("admins", len(admins)).
		Int("sent", sent).
		Msg("daily report sent")

	return report, nil
}
