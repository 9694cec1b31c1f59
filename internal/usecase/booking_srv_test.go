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
	"tourism-booking/internal/queue"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type fakeBookingRepo struct {
	mu        sync.Mutex
	bookings  map[uuid.UUID]*entity.Booking
	createErr error

	findByUserCalls int
	findByIDCalls   int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[uuid.UUID]*entity.Booking{}}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	copied := *booking
	f.bookings[booking.ID] = &copied
	f.mu.Unlock()
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findByIDCalls++
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) FindByReferenceCode(_ context.Context, code string) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, booking := range f.bookings {
		if booking.ReferenceCode == code {
			copied := *booking
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID, _, _ int) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findByUserCalls++
	var out []*entity.Booking
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			copied := *booking
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			total++
		}
	}
	return total, nil
}

func (f *fakeBookingRepo) FindByItem(_ context.Context, itemType entity.ItemType, itemID uuid.UUID) ([]*entity.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[bookingID]
	if !ok {
		return errors.New("booking not found")
	}
	booking.Status = status
	return nil
}

type fakeAccommodationRepo struct {
	repository.AccommodationRepository
	item *entity.Accommodation
}

func (f *fakeAccommodationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Accommodation, error) {
	if f.item == nil || f.item.ID != id {
		return nil, nil
	}
	return f.item, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	queues []string
	events []queue.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, queueName string, event queue.BookingEvent) error {
	p.mu.Lock()
	p.queues = append(p.queues, queueName)
	p.events = append(p.events, event)
	p.mu.Unlock()
	return nil
}

type bookingFixture struct {
	svc       BookingService
	bookings  *fakeBookingRepo
	cache     *cache.QueryCache
	recorder  *notify.Recorder
	publisher *recordingPublisher
	itemID    uuid.UUID
}

func newBookingFixture(available bool) *bookingFixture {
	itemID := uuid.New()
	bookings := newFakeBookingRepo()
	accommodations := &fakeAccommodationRepo{
		item: &entity.Accommodation{
			Base:        entity.Base{ID: itemID},
			Title:       "Casa na praia",
			IsAvailable: available,
		},
	}

	repo := &repository.Repository{
		Booking:       bookings,
		Accommodation: accommodations,
	}

	queryCache := cache.NewQueryCache(time.Minute)
	recorder := &notify.Recorder{}
	publisher := &recordingPublisher{}

	return &bookingFixture{
		svc:       NewBookingService(repo, queryCache, recorder, publisher, zap.NewNop()),
		bookings:  bookings,
		cache:     queryCache,
		recorder:  recorder,
		publisher: publisher,
		itemID:    itemID,
	}
}

func validCreateRequest(itemID uuid.UUID) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		ItemType:   "accommodation",
		ItemID:     itemID.String(),
		CheckIn:    "2026-09-10",
		CheckOut:   "2026-09-14",
		Guests:     2,
		TotalPrice: 1200,
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	fx := newBookingFixture(true)
	userID := uuid.New()

	// A stale listing cached before the mutation must not survive it.
	staleKey := cache.Key("bookings", userID.String(), "page-10-0")
	fx.cache.Set(staleKey, "stale")

	resp, err := fx.svc.CreateBooking(context.Background(), userID.String(), validCreateRequest(fx.itemID))
	if err != nil {
		t.Fatalf("create booking error: %v", err)
	}
	if resp.Status != entity.BookingStatusPending {
		t.Fatalf("status = %s, want pending", resp.Status)
	}
	if resp.ReferenceCode == "" {
		t.Fatal("missing reference code")
	}

	if len(fx.recorder.Successes) != 1 || fx.recorder.Successes[0] != notify.MsgBookingCreated {
		t.Fatalf("successes = %v", fx.recorder.Successes)
	}
	if _, ok := fx.cache.Get(staleKey); ok {
		t.Fatal("booking cache not invalidated after create")
	}
	if len(fx.publisher.queues) != 1 || fx.publisher.queues[0] != queue.QueueBookingCreated {
		t.Fatalf("published to %v, want %s", fx.publisher.queues, queue.QueueBookingCreated)
	}
	if fx.publisher.events[0].ReferenceCode != resp.ReferenceCode {
		t.Fatal("published event carries wrong booking")
	}
}

func TestCreateBookingUnavailableItem(t *testing.T) {
	fx := newBookingFixture(false)

	_, err := fx.svc.CreateBooking(context.Background(), uuid.New().String(), validCreateRequest(fx.itemID))
	if err == nil {
		t.Fatal("expected error for unavailable accommodation")
	}
	if len(fx.bookings.bookings) != 0 {
		t.Fatal("booking persisted despite unavailable item")
	}
	if len(fx.recorder.Errors) != 1 || fx.recorder.Errors[0] != notify.MsgBookingCreateFailed {
		t.Fatalf("errors = %v", fx.recorder.Errors)
	}
}

func TestCreateBookingRejectsInvertedDates(t *testing.T) {
	fx := newBookingFixture(true)

	req := validCreateRequest(fx.itemID)
	req.CheckIn = "2026-09-14"
	req.CheckOut = "2026-09-10"

	_, err := fx.svc.CreateBooking(context.Background(), uuid.New().String(), req)
	if err == nil {
		t.Fatal("expected error for check-out before check-in")
	}
}

func TestCreateBookingRepositoryFailure(t *testing.T) {
	fx := newBookingFixture(true)
	fx.bookings.createErr = errors.New("insert failed")

	_, err := fx.svc.CreateBooking(context.Background(), uuid.New().String(), validCreateRequest(fx.itemID))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(fx.recorder.Errors) != 1 || fx.recorder.Errors[0] != notify.MsgBookingCreateFailed {
		t.Fatalf("errors = %v", fx.recorder.Errors)
	}
	if len(fx.publisher.queues) != 0 {
		t.Fatal("event published for a failed create")
	}
}

func TestConfirmBookingTransitionsPending(t *testing.T) {
	fx := newBookingFixture(true)
	userID := uuid.New()

	resp, err := fx.svc.CreateBooking(context.Background(), userID.String(), validCreateRequest(fx.itemID))
	if err != nil {
		t.Fatalf("create booking error: %v", err)
	}

	if err := fx.svc.ConfirmBooking(context.Background(), resp.ID); err != nil {
		t.Fatalf("confirm error: %v", err)
	}

	stored, err := fx.bookings.FindByID(context.Background(), uuid.MustParse(resp.ID))
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if stored.Status != entity.BookingStatusConfirmed {
		t.Fatalf("status = %s, want confirmed", stored.Status)
	}
	if last := fx.publisher.queues[len(fx.publisher.queues)-1]; last != queue.QueueBookingConfirmed {
		t.Fatalf("last queue = %s, want %s", last, queue.QueueBookingConfirmed)
	}
}

func TestCancelBookingOwnershipEnforced(t *testing.T) {
	fx := newBookingFixture(true)
	owner := uuid.New()

	resp, err := fx.svc.CreateBooking(context.Background(), owner.String(), validCreateRequest(fx.itemID))
	if err != nil {
		t.Fatalf("create booking error: %v", err)
	}

	if err := fx.svc.CancelBooking(context.Background(), uuid.New().String(), resp.ID); err == nil {
		t.Fatal("cancel by a stranger must fail")
	}

	stored, _ := fx.bookings.FindByID(context.Background(), uuid.MustParse(resp.ID))
	if stored.Status != entity.BookingStatusPending {
		t.Fatalf("status = %s, booking mutated by rejected cancel", stored.Status)
	}
}

func TestCancelBookingCancelledIsTerminal(t *testing.T) {
	fx := newBookingFixture(true)
	owner := uuid.New()

	resp, err := fx.svc.CreateBooking(context.Background(), owner.String(), validCreateRequest(fx.itemID))
	if err != nil {
		t.Fatalf("create booking error: %v", err)
	}
	if err := fx.svc.CancelBooking(context.Background(), owner.String(), resp.ID); err != nil {
		t.Fatalf("first cancel error: %v", err)
	}

	if err := fx.svc.CancelBooking(context.Background(), owner.String(), resp.ID); err == nil {
		t.Fatal("second cancel must fail, cancelled is terminal")
	}
	if last := fx.recorder.Errors[len(fx.recorder.Errors)-1]; last != notify.MsgBookingCancelFail {
		t.Fatalf("last error notification = %s", last)
	}
}

func TestGetUserBookingsServesFromCache(t *testing.T) {
	fx := newBookingFixture(true)
	userID := uuid.New()

	if _, err := fx.svc.CreateBooking(context.Background(), userID.String(), validCreateRequest(fx.itemID)); err != nil {
		t.Fatalf("create booking error: %v", err)
	}

	page := &request.PaginatedRequest{Page: 1, PerPage: 10}
	first, err := fx.svc.GetUserBookings(context.Background(), userID.String(), page)
	if err != nil {
		t.Fatalf("first list error: %v", err)
	}
	if len(first.Data) != 1 {
		t.Fatalf("listed %d bookings, want 1", len(first.Data))
	}

	if _, err := fx.svc.GetUserBookings(context.Background(), userID.String(), page); err != nil {
		t.Fatalf("second list error: %v", err)
	}
	if fx.bookings.findByUserCalls != 1 {
		t.Fatalf("repository queried %d times, want 1 with a warm cache", fx.bookings.findByUserCalls)
	}
}

func TestGetBookingByReferenceOwnerOnly(t *testing.T) {
	fx := newBookingFixture(true)
	owner := uuid.New()

	created, err := fx.svc.CreateBooking(context.Background(), owner.String(), validCreateRequest(fx.itemID))
	if err != nil {
		t.Fatalf("create booking error: %v", err)
	}

	found, err := fx.svc.GetBookingByReference(context.Background(), owner.String(), created.ReferenceCode)
	if err != nil {
		t.Fatalf("lookup error: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("found %s, want %s", found.ID, created.ID)
	}

	// The reference code is printed on vouchers; knowing it must not leak
	// someone else's booking.
	if _, err := fx.svc.GetBookingByReference(context.Background(), uuid.New().String(), created.ReferenceCode); err == nil {
		t.Fatal("stranger resolved a booking by reference")
	}
}

func TestCreateBookingReplaysClientReference(t *testing.T) {
	fx := newBookingFixture(true)
	userID := uuid.New()

	req := validCreateRequest(fx.itemID)
	req.ReferenceCode = "RETRY-2026-0042"

	first, err := fx.svc.CreateBooking(context.Background(), userID.String(), req)
	if err != nil {
		t.Fatalf("create booking error: %v", err)
	}
	if first.ReferenceCode != req.ReferenceCode {
		t.Fatalf("reference code = %s, want %s", first.ReferenceCode, req.ReferenceCode)
	}

	// A retry after a timeout hits the unique constraint on the code; the
	// caller must get the original booking back, not a second one.
	fx.bookings.createErr = &pgconn.PgError{Code: "23505"}
	second, err := fx.svc.CreateBooking(context.Background(), userID.String(), req)
	if err != nil {
		t.Fatalf("retried create error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("retry returned booking %s, want %s", second.ID, first.ID)
	}
	if len(fx.bookings.bookings) != 1 {
		t.Fatalf("%d bookings stored, want 1", len(fx.bookings.bookings))
	}
	if len(fx.publisher.queues) != 1 {
		t.Fatalf("published %d events, want 1", len(fx.publisher.queues))
	}
	if len(fx.recorder.Errors) != 0 {
		t.Fatalf("errors = %v, replay is not a failure", fx.recorder.Errors)
	}

	// The same code from another user is a genuine conflict.
	if _, err := fx.svc.CreateBooking(context.Background(), uuid.New().String(), req); err == nil {
		t.Fatal("another user reusing the code must fail")
	}
}

func TestCancelBookingLoadsBookingOnce(t *testing.T) {
	fx := newBookingFixture(true)
	owner := uuid.New()

	resp, err := fx.svc.CreateBooking(context.Background(), owner.String(), validCreateRequest(fx.itemID))
	if err != nil {
		t.Fatalf("create booking error: %v", err)
	}

	fx.bookings.findByIDCalls = 0
	if err := fx.svc.CancelBooking(context.Background(), owner.String(), resp.ID); err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if fx.bookings.findByIDCalls != 1 {
		t.Fatalf("booking fetched %d times during cancel, want 1", fx.bookings.findByIDCalls)
	}
}
