package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"tourism-booking/internal/data/entity"
	"tourism-booking/internal/data/repository"
	"tourism-booking/internal/dto/request"
	"tourism-booking/internal/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeRestaurantRepo struct {
	repository.RestaurantRepository

	mu           sync.Mutex
	table        *entity.RestaurantTable
	reservations map[uuid.UUID]*entity.TableReservation
}

func newFakeRestaurantRepo(table *entity.RestaurantTable) *fakeRestaurantRepo {
	return &fakeRestaurantRepo{table: table, reservations: map[uuid.UUID]*entity.TableReservation{}}
}

func (f *fakeRestaurantRepo) FindTableByID(_ context.Context, id uuid.UUID) (*entity.RestaurantTable, error) {
	if f.table == nil || f.table.ID != id {
		return nil, nil
	}
	return f.table, nil
}

func (f *fakeRestaurantRepo) CreateReservation(_ context.Context, reservation *entity.TableReservation) error {
	f.mu.Lock()
	copied := *reservation
	f.reservations[reservation.ID] = &copied
	f.mu.Unlock()
	return nil
}

func (f *fakeRestaurantRepo) FindReservationsByTable(_ context.Context, tableID uuid.UUID) ([]*entity.TableReservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.TableReservation
	for _, reservation := range f.reservations {
		if reservation.TableID == tableID && reservation.Status != entity.BookingStatusCancelled {
			copied := *reservation
			out = append(out, &copied)
		}
	}
	return out, nil
}

func newReservationFixture() (RestaurantService, *fakeRestaurantRepo, uuid.UUID) {
	tableID := uuid.New()
	restaurants := newFakeRestaurantRepo(&entity.RestaurantTable{
		BaseSimple: entity.BaseSimple{ID: tableID},
		Label:      "Mesa 4",
		Seats:      4,
	})
	repo := &repository.Repository{Restaurant: restaurants}
	svc := NewRestaurantService(repo, &notify.Recorder{}, zap.NewNop())
	return svc, restaurants, tableID
}

func TestReserveRejectsOversizedParty(t *testing.T) {
	svc, restaurants, tableID := newReservationFixture()

	_, err := svc.Reserve(context.Background(), uuid.New().String(), &request.CreateReservationRequest{
		TableID:    tableID.String(),
		ReservedAt: time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		Guests:     6,
	})
	if err == nil {
		t.Fatal("expected error for a party larger than the table")
	}
	if len(restaurants.reservations) != 0 {
		t.Fatal("reservation persisted despite the rejection")
	}
}

func TestReserveRejectsOverlappingSeating(t *testing.T) {
	svc, restaurants, tableID := newReservationFixture()
	slot := time.Now().Add(24 * time.Hour)

	first, err := svc.Reserve(context.Background(), uuid.New().String(), &request.CreateReservationRequest{
		TableID:    tableID.String(),
		ReservedAt: slot.Format(time.RFC3339),
		Guests:     2,
	})
	if err != nil {
		t.Fatalf("first reserve error: %v", err)
	}
	if first.Status != entity.BookingStatusPending {
		t.Fatalf("status = %s, want pending", first.Status)
	}

	// Another party one hour later collides with the seating window.
	_, err = svc.Reserve(context.Background(), uuid.New().String(), &request.CreateReservationRequest{
		TableID:    tableID.String(),
		ReservedAt: slot.Add(time.Hour).Format(time.RFC3339),
		Guests:     2,
	})
	if err == nil {
		t.Fatal("expected error for an overlapping reservation")
	}

	// The same table is free again outside the window.
	if _, err := svc.Reserve(context.Background(), uuid.New().String(), &request.CreateReservationRequest{
		TableID:    tableID.String(),
		ReservedAt: slot.Add(3 * time.Hour).Format(time.RFC3339),
		Guests:     2,
	}); err != nil {
		t.Fatalf("non-overlapping reserve error: %v", err)
	}
	if len(restaurants.reservations) != 2 {
		t.Fatalf("reservations = %d, want 2", len(restaurants.reservations))
	}
}

func TestReserveRejectsPastSlot(t *testing.T) {
	svc, _, tableID := newReservationFixture()

	_, err := svc.Reserve(context.Background(), uuid.New().String(), &request.CreateReservationRequest{
		TableID:    tableID.String(),
		ReservedAt: time.Now().Add(-time.Hour).Format(time.RFC3339),
		Guests:     2,
	})
	if err == nil {
		t.Fatal("expected error for a slot in the past")
	}
}
