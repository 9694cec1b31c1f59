package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tourism-booking/internal/cache"
	"tourism-booking/internal/data/entity"
	"tourism-booking/internal/data/repository"
	"tourism-booking/internal/dto/request"
	"tourism-booking/internal/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeEventRepo struct {
	repository.EventRepository

	mu       sync.Mutex
	event    *entity.Event
	bookings map[uuid.UUID]*entity.EventBooking

	createBookingErr error
	reserveCalls     int
	restoreCalls     int
}

func newFakeEventRepo(event *entity.Event) *fakeEventRepo {
	return &fakeEventRepo{event: event, bookings: map[uuid.UUID]*entity.EventBooking{}}
}

func (f *fakeEventRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.event == nil || f.event.ID != id {
		return nil, nil
	}
	copied := *f.event
	return &copied, nil
}

func (f *fakeEventRepo) ReserveSpots(_ context.Context, eventID uuid.UUID, spots int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reserveCalls++
	if f.event == nil || f.event.ID != eventID {
		return errors.New("event not found")
	}
	if f.event.AvailableSpots < spots {
		return errors.New("not enough spots available")
	}
	f.event.AvailableSpots -= spots
	return nil
}

func (f *fakeEventRepo) RestoreSpots(_ context.Context, eventID uuid.UUID, spots int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restoreCalls++
	if f.event == nil || f.event.ID != eventID {
		return errors.New("event not found")
	}
	f.event.AvailableSpots += spots
	if f.event.AvailableSpots > f.event.TotalSpots {
		f.event.AvailableSpots = f.event.TotalSpots
	}
	return nil
}

func (f *fakeEventRepo) CreateBooking(_ context.Context, booking *entity.EventBooking) error {
	if f.createBookingErr != nil {
		return f.createBookingErr
	}
	f.mu.Lock()
	copied := *booking
	f.bookings[booking.ID] = &copied
	f.mu.Unlock()
	return nil
}

func (f *fakeEventRepo) FindBookingByID(_ context.Context, id uuid.UUID) (*entity.EventBooking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeEventRepo) UpdateBookingStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	booking.Status = status
	return nil
}

func (f *fakeEventRepo) availableSpots() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.event.AvailableSpots
}

type eventFixture struct {
	svc      EventService
	events   *fakeEventRepo
	recorder *notify.Recorder
	eventID  uuid.UUID
}

func newEventFixture(availableSpots int) *eventFixture {
	eventID := uuid.New()
	events := newFakeEventRepo(&entity.Event{
		Base:           entity.Base{ID: eventID},
		Title:          "Festival de verão",
		StartsAt:       time.Now().Add(48 * time.Hour),
		EndsAt:         time.Now().Add(52 * time.Hour),
		TicketPrice:    50,
		TotalSpots:     100,
		AvailableSpots: availableSpots,
		IsAvailable:    true,
	})

	repo := &repository.Repository{Event: events}
	recorder := &notify.Recorder{}

	return &eventFixture{
		svc:      NewEventService(repo, cache.NewQueryCache(time.Minute), recorder, &recordingPublisher{}, zap.NewNop()),
		events:   events,
		recorder: recorder,
		eventID:  eventID,
	}
}

func TestBookEventReservesSpots(t *testing.T) {
	fx := newEventFixture(10)

	resp, err := fx.svc.BookEvent(context.Background(), uuid.New().String(), &request.CreateEventBookingRequest{
		EventID: fx.eventID.String(),
		Spots:   3,
	})
	if err != nil {
		t.Fatalf("book event error: %v", err)
	}
	if resp.Status != entity.BookingStatusConfirmed {
		t.Fatalf("status = %s, want confirmed", resp.Status)
	}
	if resp.TotalPrice != 150 {
		t.Fatalf("total = %v, want ticket price times spots", resp.TotalPrice)
	}
	if got := fx.events.availableSpots(); got != 7 {
		t.Fatalf("available spots = %d, want 7", got)
	}
}

func TestBookEventRejectsOverbooking(t *testing.T) {
	fx := newEventFixture(2)

	_, err := fx.svc.BookEvent(context.Background(), uuid.New().String(), &request.CreateEventBookingRequest{
		EventID: fx.eventID.String(),
		Spots:   3,
	})
	if err == nil {
		t.Fatal("expected error when spots run out")
	}
	if got := fx.events.availableSpots(); got != 2 {
		t.Fatalf("available spots = %d, rejected booking must not consume any", got)
	}
	if len(fx.recorder.Errors) == 0 {
		t.Fatal("expected a failure notification")
	}
}

func TestBookEventRestoresSpotsWhenPersistFails(t *testing.T) {
	fx := newEventFixture(10)
	fx.events.createBookingErr = errors.New("insert failed")

	_, err := fx.svc.BookEvent(context.Background(), uuid.New().String(), &request.CreateEventBookingRequest{
		EventID: fx.eventID.String(),
		Spots:   4,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := fx.events.availableSpots(); got != 10 {
		t.Fatalf("available spots = %d, reserved spots leaked on rollback", got)
	}
	if fx.events.restoreCalls != 1 {
		t.Fatalf("restoreCalls = %d, want 1", fx.events.restoreCalls)
	}
}

func TestBookEventRejectsStartedEvent(t *testing.T) {
	fx := newEventFixture(10)
	fx.events.event.StartsAt = time.Now().Add(-time.Hour)

	_, err := fx.svc.BookEvent(context.Background(), uuid.New().String(), &request.CreateEventBookingRequest{
		EventID: fx.eventID.String(),
		Spots:   1,
	})
	if err == nil {
		t.Fatal("expected error for an event that already started")
	}
	if fx.events.reserveCalls != 0 {
		t.Fatal("no spots may be reserved for a started event")
	}
}

func TestCancelEventBookingRestoresSpots(t *testing.T) {
	fx := newEventFixture(10)
	userID := uuid.New()

	resp, err := fx.svc.BookEvent(context.Background(), userID.String(), &request.CreateEventBookingRequest{
		EventID: fx.eventID.String(),
		Spots:   5,
	})
	if err != nil {
		t.Fatalf("book event error: %v", err)
	}

	if err := fx.svc.CancelEventBooking(context.Background(), userID.String(), resp.ID); err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if got := fx.events.availableSpots(); got != 10 {
		t.Fatalf("available spots = %d, want full restore", got)
	}

	// Cancelled is terminal: a second cancel fails and restores nothing.
	if err := fx.svc.CancelEventBooking(context.Background(), userID.String(), resp.ID); err == nil {
		t.Fatal("second cancel must fail")
	}
	if got := fx.events.availableSpots(); got != 10 {
		t.Fatalf("available spots = %d, double cancel must not double restore", got)
	}
}
