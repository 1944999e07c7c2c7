package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roamstack/tourism-api/internal/domain"
	"github.com/roamstack/tourism-api/internal/logger"
	"github.com/roamstack/tourism-api/internal/platform/events"
	"github.com/roamstack/tourism-api/internal/platform/mailer"
	"github.com/roamstack/tourism-api/internal/repo/postgres"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrStatusUnchanged   = errors.New("status already set")
	ErrUnknownStatus     = errors.New("unknown booking status")
	ErrIllegalTransition = errors.New("illegal status transition")
)

// BookingService owns the booking lifecycle: all status changes go through
// UpdateStatus so the transition table holds.
type BookingService interface {
	Create(ctx context.Context, req *domain.BookingCreateReq) (int64, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	AssignedTours(ctx context.Context, guideName string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type bookingService struct {
	repo   postgres.BookingsRepo
	bus    events.Publisher
	mailer mailer.Service
}

func NewBookingService(repo postgres.BookingsRepo, bus events.Publisher, m mailer.Service) BookingService {
	return &bookingService{repo: repo, bus: bus, mailer: m}
}

func (s *bookingService) Create(ctx context.Context, req *domain.BookingCreateReq) (int64, error) {
	id, err := s.repo.Insert(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create booking: %w", err)
	}

	event := events.BookingCreatedEvent{
		BookingID:   id,
		Email:       req.Email,
		GuideName:   req.GuideName,
		PackageName: req.PackageName,
		TourDate:    req.TourDate,
		Price:       req.Price,
		CreatedAt:   time.Now(),
	}
	if err := s.bus.Publish(ctx, events.BookingCreated, event); err != nil {
		logger.ErrorContext(ctx, "failed to publish booking created event", "error", err, "booking_id", id)
	}

	return id, nil
}

func (s *bookingService) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	return s.repo.ListByEmail(ctx, email)
}

func (s *bookingService) AssignedTours(ctx context.Context, guideName string) ([]domain.Booking, error) {
	return s.repo.ListAssigned(ctx, guideName)
}

// UpdateStatus validates the requested transition against the current record
// before writing. The write itself is conditional on the status actually
// changing, so a concurrent identical update still reports not-modified.
func (s *bookingService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Booking, error) {
	next, ok := domain.ParseBookingStatus(status)
	if !ok {
		return nil, ErrUnknownStatus
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.Status == next {
		return nil, ErrStatusUnchanged
	}
	if !booking.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, booking.Status, next)
	}

	count, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if count == 0 {
		return nil, ErrStatusUnchanged
	}

	event := events.BookingStatusChangedEvent{
		BookingID: booking.ID,
		Email:     booking.Email,
		GuideName: booking.GuideName,
		OldStatus: string(booking.Status),
		NewStatus: string(next),
		ChangedAt: time.Now(),
	}
	if err := s.bus.Publish(ctx, events.BookingStatusChanged, event); err != nil {
		logger.ErrorContext(ctx, "failed to publish status change event", "error", err, "booking_id", id)
	}

	s.notifyStatusChange(ctx, booking, next)

	booking.Status = next
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, id int64) (int64, error) {
	return s.repo.DeleteByID(ctx, id)
}

func (s *bookingService) notifyStatusChange(ctx context.Context, b *domain.Booking, next domain.BookingStatus) {
	subject := fmt.Sprintf("Your booking for %s is now %s", b.PackageName, next)
	text := fmt.Sprintf("Hi %s, your tour with %s on %s is now %s.",
		b.TouristName, b.GuideName, b.TourDate.Format("Jan 2, 2006"), next)
	if _, err := s.mailer.Send(b.Email, b.TouristName, subject, text, ""); err != nil {
		logger.WarnContext(ctx, "booking status email not sent", "error", err, "booking_id", b.ID)
	}
}
