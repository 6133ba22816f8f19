package repository

import (
	"context"
	"fmt"

	"github.com/communityhub/backend/internal/domain"

	"github.com/jmoiron/sqlx"
)

type statsRepository struct {
	db *sqlx.DB
}

func newStatsRepository(db *sqlx.DB) *statsRepository {
	return &statsRepository{db: db}
}

// Totals computes the back-office dashboard counters in one round trip.
func (r *statsRepository) Totals(ctx context.Context) (*SiteStats, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM catalog_item WHERE type = ? AND deleted_at IS NULL) AS events,
			(SELECT COUNT(*) FROM catalog_item WHERE type = ? AND deleted_at IS NULL) AS courses,
			(SELECT COUNT(*) FROM catalog_item WHERE type = ? AND deleted_at IS NULL) AS competitions,
			(SELECT COUNT(*) FROM registration WHERE deleted_at IS NULL) AS registrations,
			(SELECT COUNT(*) FROM volunteer WHERE deleted_at IS NULL) AS volunteers,
			(SELECT COUNT(*) FROM suggestion WHERE deleted_at IS NULL) AS suggestions,
			(SELECT COUNT(*) FROM contact_message WHERE deleted_at IS NULL) AS messages,
			(SELECT COUNT(*) FROM contact_message WHERE status = ? AND deleted_at IS NULL) AS unread_messages,
			(SELECT COUNT(*) FROM payment_order WHERE status = ?) AS paid_orders,
			(SELECT COALESCE(SUM(amount), 0) FROM payment_order WHERE status = ?) AS revenue`

	var row struct {
		Events        int64 `db:"events"`
		Courses       int64 `db:"courses"`
		Competitions  int64 `db:"competitions"`
		Registrations int64 `db:"registrations"`
		Volunteers    int64 `db:"volunteers"`
		Suggestions   int64 `db:"suggestions"`
		Messages      int64 `db:"messages"`
		UnreadMsgs    int64 `db:"unread_messages"`
		PaidOrders    int64 `db:"paid_orders"`
		Revenue       int64 `db:"revenue"`
	}

	err := r.db.GetContext(ctx, &row, query,
		domain.ItemTypeEvent, domain.ItemTypeCourse, domain.ItemTypeCompetition,
		domain.MessageUnread, domain.OrderPaid, domain.OrderPaid)
	if err != nil {
		return nil, fmt.Errorf("db site stats: %w", err)
	}

	return &SiteStats{
		Events:        row.Events,
		Courses:       row.Courses,
		Competitions:  row.Competitions,
		Registrations: row.Registrations,
		Volunteers:    row.Volunteers,
		Suggestions:   row.Suggestions,
		Messages:      row.Messages,
		UnreadMsgs:    row.UnreadMsgs,
		PaidOrders:    row.PaidOrders,
		Revenue:       row.Revenue,
	}, nil
}
