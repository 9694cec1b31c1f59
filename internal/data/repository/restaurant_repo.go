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

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *entity.Restaurant) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error)
	FindByPartnerID(ctx context.Context, partnerID uuid.UUID) ([]*entity.Restaurant, error)
	FindActive(ctx context.Context, limit, offset int) ([]*entity.Restaurant, error)
	Update(ctx context.Context, restaurant *entity.Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Tables
	CreateTable(ctx context.Context, table *entity.RestaurantTable) error
	FindTableByID(ctx context.Context, id uuid.UUID) (*entity.RestaurantTable, error)
	FindTablesByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*entity.RestaurantTable, error)

	// Reservations
	CreateReservation(ctx context.Context, reservation *entity.TableReservation) error
	FindReservationByID(ctx context.Context, id uuid.UUID) (*entity.TableReservation, error)
	FindReservationsByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.TableReservation, error)
	FindReservationsByTable(ctx context.Context, tableID uuid.UUID) ([]*entity.TableReservation, error)
	UpdateReservationStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
}

type restaurantRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRestaurantRepository(db database.PgxIface, log *zap.Logger) RestaurantRepository {
	return &restaurantRepository{
		db:  db,
		log: log.With(zap.String("repository", "restaurant")),
	}
}

const restaurantColumns = `id, partner_id, name, description, location, cuisine, media_refs, is_active, created_at, updated_at`

const reservationColumns = `id, table_id, user_id, reserved_at, guests, status, created_at, updated_at`

func (r *restaurantRepository) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, partner_id, name, description, location, cuisine, media_refs, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		restaurant.ID,
		restaurant.PartnerID,
		restaurant.Name,
		restaurant.Description,
		restaurant.Location,
		restaurant.Cuisine,
		restaurant.MediaRefs,
		restaurant.IsActive,
		restaurant.CreatedAt,
		restaurant.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create restaurant",
			zap.Error(err),
			zap.String("partner_id", restaurant.PartnerID.String()),
			zap.String("name", restaurant.Name),
		)
		return fmt.Errorf("create restaurant %s: %w", restaurant.Name, err)
	}

	return nil
}

func (r *restaurantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1 AND deleted_at IS NULL`

	var restaurant entity.Restaurant
	err := r.db.QueryRow(ctx, query, id).Scan(
		&restaurant.ID,
		&restaurant.PartnerID,
		&restaurant.Name,
		&restaurant.Description,
		&restaurant.Location,
		&restaurant.Cuisine,
		&restaurant.MediaRefs,
		&restaurant.IsActive,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find restaurant by ID",
			zap.Error(err),
			zap.String("restaurant_id", id.String()),
		)
		return nil, fmt.Errorf("find restaurant by ID %s: %w", id.String(), err)
	}

	return &restaurant, nil
}

func (r *restaurantRepository) FindByPartnerID(ctx context.Context, partnerID uuid.UUID) ([]*entity.Restaurant, error) {
	query := `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE partner_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, partnerID)
	if err != nil {
		r.log.Error("Failed to find restaurants by partner",
			zap.Error(err),
			zap.String("partner_id", partnerID.String()),
		)
		return nil, fmt.Errorf("find restaurants for partner %s: %w", partnerID.String(), err)
	}
	defer rows.Close()

	return collectRestaurants(rows, r.log)
}

func (r *restaurantRepository) FindActive(ctx context.Context, limit, offset int) ([]*entity.Restaurant, error) {
	query := `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE is_active = TRUE AND deleted_at IS NULL
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find active restaurants", zap.Error(err))
		return nil, fmt.Errorf("find active restaurants: %w", err)
	}
	defer rows.Close()

	return collectRestaurants(rows, r.log)
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *entity.Restaurant) error {
	query := `
		UPDATE restaurants
		SET name = $2, description = $3, location = $4, cuisine = $5,
		    media_refs = $6, is_active = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		restaurant.ID,
		restaurant.Name,
		restaurant.Description,
		restaurant.Location,
		restaurant.Cuisine,
		restaurant.MediaRefs,
		restaurant.IsActive,
		restaurant.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update restaurant",
			zap.Error(err),
			zap.String("restaurant_id", restaurant.ID.String()),
		)
		return fmt.Errorf("update restaurant %s: %w", restaurant.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("restaurant %s not found", restaurant.ID.String())
	}

	return nil
}

func (r *restaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE restaurants SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete restaurant",
			zap.Error(err),
			zap.String("restaurant_id", id.String()),
		)
		return fmt.Errorf("delete restaurant %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("restaurant %s not found", id.String())
	}

	return nil
}

func (r *restaurantRepository) CreateTable(ctx context.Context, table *entity.RestaurantTable) error {
	query := `
		INSERT INTO restaurant_tables (id, restaurant_id, label, seats, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		table.ID,
		table.RestaurantID,
		table.Label,
		table.Seats,
		table.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create restaurant table",
			zap.Error(err),
			zap.String("restaurant_id", table.RestaurantID.String()),
			zap.String("label", table.Label),
		)
		return fmt.Errorf("create table %s: %w", table.Label, err)
	}

	return nil
}

func (r *restaurantRepository) FindTableByID(ctx context.Context, id uuid.UUID) (*entity.RestaurantTable, error) {
	query := `
		SELECT id, restaurant_id, label, seats, created_at
		FROM restaurant_tables
		WHERE id = $1
	`

	var table entity.RestaurantTable
	err := r.db.QueryRow(ctx, query, id).Scan(
		&table.ID,
		&table.RestaurantID,
		&table.Label,
		&table.Seats,
		&table.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find table by ID",
			zap.Error(err),
			zap.String("table_id", id.String()),
		)
		return nil, fmt.Errorf("find table by ID %s: %w", id.String(), err)
	}

	return &table, nil
}

func (r *restaurantRepository) FindTablesByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*entity.RestaurantTable, error) {
	query := `
		SELECT id, restaurant_id, label, seats, created_at
		FROM restaurant_tables
		WHERE restaurant_id = $1
		ORDER BY label
	`

	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		r.log.Error("Failed to find tables by restaurant",
			zap.Error(err),
			zap.String("restaurant_id", restaurantID.String()),
		)
		return nil, fmt.Errorf("find tables for restaurant %s: %w", restaurantID.String(), err)
	}
	defer rows.Close()

	var tables []*entity.RestaurantTable
	for rows.Next() {
		var table entity.RestaurantTable
		err := rows.Scan(
			&table.ID,
			&table.RestaurantID,
			&table.Label,
			&table.Seats,
			&table.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan restaurant table row", zap.Error(err))
			return nil, fmt.Errorf("scan restaurant table row: %w", err)
		}
		tables = append(tables, &table)
	}

	return tables, nil
}

func (r *restaurantRepository) CreateReservation(ctx context.Context, reservation *entity.TableReservation) error {
	query := `
		INSERT INTO table_reservations (id, table_id, user_id, reserved_at, guests, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.TableID,
		reservation.UserID,
		reservation.ReservedAt,
		reservation.Guests,
		reservation.Status,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create table reservation",
			zap.Error(err),
			zap.String("table_id", reservation.TableID.String()),
			zap.String("user_id", reservation.UserID.String()),
		)
		return fmt.Errorf("create table reservation: %w", err)
	}

	return nil
}

func (r *restaurantRepository) FindReservationByID(ctx context.Context, id uuid.UUID) (*entity.TableReservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM table_reservations WHERE id = $1`

	var reservation entity.TableReservation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.TableID,
		&reservation.UserID,
		&reservation.ReservedAt,
		&reservation.Guests,
		&reservation.Status,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return &reservation, nil
}

func (r *restaurantRepository) FindReservationsByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.TableReservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM table_reservations
		WHERE user_id = $1
		ORDER BY reserved_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find reservations by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reservations for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return collectReservations(rows, r.log)
}

func (r *restaurantRepository) FindReservationsByTable(ctx context.Context, tableID uuid.UUID) ([]*entity.TableReservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM table_reservations
		WHERE table_id = $1 AND status != 'cancelled'
		ORDER BY reserved_at
	`

	rows, err := r.db.Query(ctx, query, tableID)
	if err != nil {
		r.log.Error("Failed to find reservations by table",
			zap.Error(err),
			zap.String("table_id", tableID.String()),
		)
		return nil, fmt.Errorf("find reservations for table %s: %w", tableID.String(), err)
	}
	defer rows.Close()

	return collectReservations(rows, r.log)
}

func (r *restaurantRepository) UpdateReservationStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE table_reservations SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	return nil
}

func collectRestaurants(rows pgx.Rows, log *zap.Logger) ([]*entity.Restaurant, error) {
	var restaurants []*entity.Restaurant
	for rows.Next() {
		var restaurant entity.Restaurant
		err := rows.Scan(
			&restaurant.ID,
			&restaurant.PartnerID,
			&restaurant.Name,
			&restaurant.Description,
			&restaurant.Location,
			&restaurant.Cuisine,
			&restaurant.MediaRefs,
			&restaurant.IsActive,
			&restaurant.CreatedAt,
			&restaurant.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan restaurant row", zap.Error(err))
			return nil, fmt.Errorf("scan restaurant row: %w", err)
		}
		restaurants = append(restaurants, &restaurant)
	}

	return restaurants, nil
}

func collectReservations(rows pgx.Rows, log *zap.Logger) ([]*entity.TableReservation, error) {
	var reservations []*entity.TableReservation
	for rows.Next() {
		var reservation entity.TableReservation
		err := rows.Scan(
			&reservation.ID,
			&reservation.TableID,
			&reservation.UserID,
			&reservation.ReservedAt,
			&reservation.Guests,
			&reservation.Status,
			&reservation.CreatedAt,
			&reservation.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, &reservation)
	}

	return reservations, nil
}
