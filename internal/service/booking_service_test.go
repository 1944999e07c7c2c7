package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/roamstack/tourism-api/internal/domain"
)

// ---------- Mocks ----------

type mockBookingsRepo struct {
	nextID   int64
	bookings map[int64]*domain.Booking
}

func newMockBookingsRepo() *mockBookingsRepo {
	return &mockBookingsRepo{nextID: 1, bookings: make(map[int64]*domain.Booking)}
}

func (m *mockBookingsRepo) Insert(_ context.Context, req *domain.BookingCreateReq) (int64, error) {
	id := m.nextID
	m.nextID++
	m.bookings[id] = &domain.Booking{
		ID:          id,
		TouristName: req.TouristName,
		Email:       req.Email,
		GuideName:   req.GuideName,
		PackageName: req.PackageName,
		TourDate:    req.TourDate,
		Price:       req.Price,
		Status:      domain.BookingPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	return id, nil
}

func (m *mockBookingsRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (m *mockBookingsRepo) ListByEmail(_ context.Context, email string) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.IsOwner(email) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingsRepo) ListAssigned(_ context.Context, guideName string) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.GuideName == guideName && b.Status != domain.BookingCancelled {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockBookingsRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) (int64, error) {
	b, ok := m.bookings[id]
	if !ok || b.Status == status {
		return 0, nil
	}
	b.Status = status
	return 1, nil
}

func (m *mockBookingsRepo) DeleteByID(_ context.Context, id int64) (int64, error) {
	if _, ok := m.bookings[id]; !ok {
		return 0, nil
	}
	delete(m.bookings, id)
	return 1, nil
}

type mockPublisher struct {
	published []string
}

func (m *mockPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	m.published = append(m.published, subject)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

type mockMailer struct {
	lastTo      string
	lastSubject string
	sent        int
}

func (m *mockMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	m.lastTo = toEmail
	m.lastSubject = subject
	m.sent++
	return "mock-id", nil
}

// ---------- Tests ----------

func newTestService() (BookingService, *mockBookingsRepo, *mockPublisher, *mockMailer) {
	repo := newMockBookingsRepo()
	bus := &mockPublisher{}
	m := &mockMailer{}
	return NewBookingService(repo, bus, m), repo, bus, m
}

func seedBooking(t *testing.T, svc BookingService) int64 {
	t.Helper()
	id, err := svc.Create(context.Background(), &domain.BookingCreateReq{
		TouristName: "Ana",
		Email:       "a@x.com",
		GuideName:   "Marco",
		PackageName: "Sunset Valley",
		TourDate:    time.Now().Add(72 * time.Hour),
		Price:       150,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return id
}

func TestUpdateStatusConfirmsPending(t *testing.T) {
	svc, repo, bus, m := newTestService()
	id := seedBooking(t, svc)

	b, err := svc.UpdateStatus(context.Background(), id, "Confirmed")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if b.Status != domain.BookingConfirmed {
		t.Errorf("returned status = %s, want Confirmed", b.Status)
	}

	stored, _ := repo.GetByID(context.Background(), id)
	if stored.Status != domain.BookingConfirmed {
		t.Errorf("stored status = %s, want Confirmed", stored.Status)
	}

	found := false
	for _, subj := range bus.published {
		if subj == "booking.status_changed" {
			found = true
		}
	}
	if !found {
		t.Error("expected booking.status_changed event")
	}
	if m.sent == 0 || m.lastTo != "a@x.com" {
		t.Errorf("expected notification email to a@x.com, got %q", m.lastTo)
	}
}

func TestUpdateStatusSecondCallReportsUnchanged(t *testing.T) {
	svc, _, _, _ := newTestService()
	id := seedBooking(t, svc)

	if _, err := svc.UpdateStatus(context.Background(), id, "Confirmed"); err != nil {
		t.Fatalf("first UpdateStatus: %v", err)
	}
	_, err := svc.UpdateStatus(context.Background(), id, "Confirmed")
	if !errors.Is(err, ErrStatusUnchanged) {
		t.Errorf("second UpdateStatus err = %v, want ErrStatusUnchanged", err)
	}
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.UpdateStatus(context.Background(), 999, "Confirmed")
	if !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("err = %v, want ErrBookingNotFound", err)
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	svc, _, _, _ := newTestService()
	id := seedBooking(t, svc)
	_, err := svc.UpdateStatus(context.Background(), id, "Rejected")
	if !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("err = %v, want ErrUnknownStatus", err)
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	svc, _, _, _ := newTestService()
	id := seedBooking(t, svc)

	// Pending -> Completed skips Confirmed
	_, err := svc.UpdateStatus(context.Background(), id, "Completed")
	if !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("err = %v, want ErrIllegalTransition", err)
	}

	if _, err := svc.UpdateStatus(context.Background(), id, "Cancelled"); err != nil {
		t.Fatalf("Pending -> Cancelled should succeed: %v", err)
	}
	_, err = svc.UpdateStatus(context.Background(), id, "Confirmed")
	if !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("Cancelled is terminal, err = %v, want ErrIllegalTransition", err)
	}
}

func TestAssignedToursExcludesCancelled(t *testing.T) {
	svc, _, _, _ := newTestService()
	first := seedBooking(t, svc)
	seedBooking(t, svc)

	if _, err := svc.UpdateStatus(context.Background(), first, "Cancelled"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	tours, err := svc.AssignedTours(context.Background(), "Marco")
	if err != nil {
		t.Fatalf("AssignedTours: %v", err)
	}
	if len(tours) != 1 {
		t.Fatalf("got %d assigned tours, want 1", len(tours))
	}
	if tours[0].Status == domain.BookingCancelled {
		t.Error("cancelled booking leaked into assigned tours")
	}
}

func TestCreatePublishesEvent(t *testing.T) {
	svc, _, bus, _ := newTestService()
	seedBooking(t, svc)
	if len(bus.published) == 0 || bus.published[0] != "booking.created" {
		t.Errorf("published = %v, want booking.created first", bus.published)
	}
}
