package repository

import (
	"context"
	"fmt"

	"tourism-booking/internal/data/entity"
	"tourism-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindByPartnerID(ctx context.Context, partnerID uuid.UUID) ([]*entity.Event, error)
	FindUpcoming(ctx context.Context, limit, offset int) ([]*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Spot accounting
	ReserveSpots(ctx context.Context, eventID uuid.UUID, spots int) error
	RestoreSpots(ctx context.Context, eventID uuid.UUID, spots int) error

	// Event bookings
	CreateBooking(ctx context.Context, booking *entity.EventBooking) error
	FindBookingByID(ctx context.Context, id uuid.UUID) (*entity.EventBooking, error)
	FindBookingsByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.EventBooking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

const eventColumns = `id, partner_id, title, description, venue, starts_at, ends_at, ticket_price, total_spots, available_spots, media_refs, is_available, created_at, updated_at`

func scanEvent(row pgx.Row) (*entity.Event, error) {
	var event entity.Event
	err := row.Scan(
		&event.ID,
		&event.PartnerID,
		&event.Title,
		&event.Description,
		&event.Venue,
		&event.StartsAt,
		&event.EndsAt,
		&event.TicketPrice,
		&event.TotalSpots,
		&event.AvailableSpots,
		&event.MediaRefs,
		&event.IsAvailable,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (id, partner_id, title, description, venue, starts_at, ends_at, ticket_price, total_spots, available_spots, media_refs, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		event.ID,
		event.PartnerID,
		event.Title,
		event.Description,
		event.Venue,
		event.StartsAt,
		event.EndsAt,
		event.TicketPrice,
		event.TotalSpots,
		event.AvailableSpots,
		event.MediaRefs,
		event.IsAvailable,
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("partner_id", event.PartnerID.String()),
			zap.String("title", event.Title),
		)
		return fmt.Errorf("create event %s: %w", event.Title, err)
	}

	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND deleted_at IS NULL`

	event, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return nil, fmt.Errorf("find event by ID %s: %w", id.String(), err)
	}

	return event, nil
}

func (r *eventRepository) FindByPartnerID(ctx context.Context, partnerID uuid.UUID) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE partner_id = $1 AND deleted_at IS NULL
		ORDER BY starts_at
	`

	rows, err := r.db.Query(ctx, query, partnerID)
	if err != nil {
		r.log.Error("Failed to find events by partner",
			zap.Error(err),
			zap.String("partner_id", partnerID.String()),
		)
		return nil, fmt.Errorf("find events for partner %s: %w", partnerID.String(), err)
	}
	defer rows.Close()

	return collectEvents(rows, r.log)
}

func (r *eventRepository) FindUpcoming(ctx context.Context, limit, offset int) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE is_available = TRUE AND starts_at > NOW() AND deleted_at IS NULL
		ORDER BY starts_at
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find upcoming events", zap.Error(err))
		return nil, fmt.Errorf("find upcoming events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows, r.log)
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, venue = $4, starts_at = $5, ends_at = $6,
		    ticket_price = $7, total_spots = $8, available_spots = $9, media_refs = $10,
		    is_available = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Venue,
		event.StartsAt,
		event.EndsAt,
		event.TicketPrice,
		event.TotalSpots,
		event.AvailableSpots,
		event.MediaRefs,
		event.IsAvailable,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update event",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
		)
		return fmt.Errorf("update event %s: %w", event.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", event.ID.String())
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE events SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete event",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("delete event %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", id.String())
	}

	return nil
}

// ReserveSpots decrements available_spots atomically; the guard keeps the
// count from going negative under concurrent bookings.
func (r *eventRepository) ReserveSpots(ctx context.Context, eventID uuid.UUID, spots int) error {
	query := `
		UPDATE events
		SET available_spots = available_spots - $2, updated_at = NOW()
		WHERE id = $1 AND available_spots >= $2
	`

	result, err := r.db.Exec(ctx, query, eventID, spots)
	if err != nil {
		r.log.Error("Failed to reserve event spots",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
			zap.Int("spots", spots),
		)
		return fmt.Errorf("reserve %d spots for event %s: %w", spots, eventID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s has fewer than %d spots available", eventID.String(), spots)
	}

	return nil
}

// RestoreSpots gives reserved spots back, capped at total_spots.
func (r *eventRepository) RestoreSpots(ctx context.Context, eventID uuid.UUID, spots int) error {
	query := `
		UPDATE events
		SET available_spots = LEAST(available_spots + $2, total_spots), updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, eventID, spots)
	if err != nil {
		r.log.Error("Failed to restore event spots",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
			zap.Int("spots", spots),
		)
		return fmt.Errorf("restore %d spots for event %s: %w", spots, eventID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s not found", eventID.String())
	}

	return nil
}

func (r *eventRepository) CreateBooking(ctx context.Context, booking *entity.EventBooking) error {
	query := `
		INSERT INTO event_bookings (id, event_id, user_id, spots, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.EventID,
		booking.UserID,
		booking.Spots,
		booking.TotalPrice,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create event booking",
			zap.Error(err),
			zap.String("event_id", booking.EventID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create event booking: %w", err)
	}

	return nil
}

func (r *eventRepository) FindBookingByID(ctx context.Context, id uuid.UUID) (*entity.EventBooking, error) {
	query := `
		SELECT id, event_id, user_id, spots, total_price, status, created_at, updated_at
		FROM event_bookings
		WHERE id = $1
	`

	var booking entity.EventBooking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.EventID,
		&booking.UserID,
		&booking.Spots,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event booking by ID",
			zap.Error(err),
			zap.String("event_booking_id", id.String()),
		)
		return nil, fmt.Errorf("find event booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *eventRepository) FindBookingsByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.EventBooking, error) {
	query := `
		SELECT id, event_id, user_id, spots, total_price, status, created_at, updated_at
		FROM event_bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find event bookings by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find event bookings for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.EventBooking
	for rows.Next() {
		var booking entity.EventBooking
		err := rows.Scan(
			&booking.ID,
			&booking.EventID,
			&booking.UserID,
			&booking.Spots,
			&booking.TotalPrice,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan event booking row", zap.Error(err))
			return nil, fmt.Errorf("scan event booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *eventRepository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE event_bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update event booking status",
			zap.Error(err),
			zap.String("event_booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update event booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event booking %s not found", id.String())
	}

	return nil
}

func collectEvents(rows pgx.Rows, log *zap.Logger) ([]*entity.Event, error) {
	var events []*entity.Event
	for rows.Next() {
		var event entity.Event
		err := rows.Scan(
			&event.ID,
			&event.PartnerID,
			&event.Title,
			&event.Description,
			&event.Venue,
			&event.StartsAt,
			&event.EndsAt,
			&event.TicketPrice,
			&event.TotalSpots,
			&event.AvailableSpots,
			&event.MediaRefs,
			&event.IsAvailable,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, &event)
	}

	return events, nil
}
