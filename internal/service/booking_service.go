package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
	"github.com/AlexMorrigan04/pilotforce-api/internal/events"
	"github.com/AlexMorrigan04/pilotforce-api/internal/repository"
	apperrors "github.com/AlexMorrigan04/pilotforce-api/pkg/util"
)

// BookingService coordinates inspection booking workflows.
type BookingService struct {
	bookings   repository.BookingRepository
	assets     repository.AssetRepository
	resources  repository.ResourceRepository
	dispatcher events.Dispatcher
}

// BookingDependencies bundles repositories for the booking service.
type BookingDependencies struct {
	BookingRepo  repository.BookingRepository
	AssetRepo    repository.AssetRepository
	ResourceRepo repository.ResourceRepository
	Dispatcher   events.Dispatcher
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	return &BookingService{
		bookings:   deps.BookingRepo,
		assets:     deps.AssetRepo,
		resources:  deps.ResourceRepo,
		dispatcher: deps.Dispatcher,
	}
}

// BookingCreateInput describes booking creation.
type BookingCreateInput struct {
	AssetID        string
	JobTypes       []string
	FlightDate     *time.Time
	Scheduling     string
	ServiceOptions map[string]any
	SiteContact    *domain.SiteContact
	Location       string
	Notes          string
}

// BookingListInput describes listing parameters.
type BookingListInput struct {
	CompanyID string
	UserID    *string
	Status    string
	Limit     int
	Offset    int
}

// ResourceInput describes resource metadata to attach.
type ResourceInput struct {
	Type       domain.ResourceType
	FileName   string
	MimeType   string
	SizeBytes  int64
	StorageKey string
}

// Create books an inspection against an asset of the actor's company.
func (s *BookingService) Create(ctx context.Context, actor *domain.User, input BookingCreateInput) (*domain.Booking, error) {
	if input.AssetID == "" {
		return nil, apperrors.NewValidationError("asset_id required", nil)
	}
	if len(input.JobTypes) == 0 {
		return nil, apperrors.NewValidationError("at least one job type required", nil)
	}

	asset, err := s.assets.GetByID(ctx, input.AssetID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if asset.CompanyID != actor.CompanyID && !actor.Role.IsAdmin() {
		return nil, apperrors.NewForbidden("asset outside company scope")
	}

	booking := &domain.Booking{
		CompanyID:      asset.CompanyID,
		UserID:         actor.ID,
		AssetID:        asset.ID,
		AssetName:      asset.Name,
		Status:         domain.BookingStatusPending,
		JobTypes:       input.JobTypes,
		FlightDate:     input.FlightDate,
		Scheduling:     input.Scheduling,
		ServiceOptions: input.ServiceOptions,
		SiteContact:    input.SiteContact,
		Postcode:       asset.Postcode,
		Location:       input.Location,
		Notes:          input.Notes,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventBookingCreated,
		ActorID:   actor.ID,
		CompanyID: booking.CompanyID,
		Payload: events.BookingCreatedPayload{
			BookingID:  booking.ID,
			AssetID:    booking.AssetID,
			JobTypes:   booking.JobTypes,
			FlightDate: booking.FlightDate,
		},
	})
	return booking, nil
}

// List returns bookings scoped to a company, with case-insensitive status
// filtering.
func (s *BookingService) List(ctx context.Context, input BookingListInput) ([]domain.Booking, error) {
	filter := repository.BookingFilter{
		UserID: input.UserID,
		Limit:  input.Limit,
		Offset: input.Offset,
	}
	if input.CompanyID != "" {
		filter.CompanyID = &input.CompanyID
	}
	if raw := strings.TrimSpace(input.Status); raw != "" {
		status, ok := domain.ParseBookingStatus(raw)
		if !ok {
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": raw})
		}
		filter.Statuses = []domain.BookingStatus{status}
	}
	bookings, err := s.bookings.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return bookings, nil
}

// Get loads one booking within the actor's scope.
func (s *BookingService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if booking.CompanyID != actor.CompanyID && !actor.Role.IsAdmin() {
		return nil, apperrors.NewForbidden("outside company scope")
	}
	return booking, nil
}

// UpdateStatus applies a validated status transition. Raw status input folds
// case before validation.
func (s *BookingService) UpdateStatus(ctx context.Context, actor *domain.User, id, rawStatus string) (*domain.Booking, error) {
	status, ok := domain.ParseBookingStatus(rawStatus)
	if !ok {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": rawStatus})
	}

	booking, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == status {
		return booking, nil
	}
	if !domain.CanTransition(booking.Status, status) {
		return nil, apperrors.NewConflict("illegal status transition", map[string]any{
			"from": booking.Status,
			"to":   status,
		})
	}

	oldStatus := booking.Status
	booking.Status = status
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventBookingStatusChanged,
		ActorID:   actor.ID,
		CompanyID: booking.CompanyID,
		Payload: events.BookingStatusChangedPayload{
			BookingID: booking.ID,
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return booking, nil
}

// Delete removes a booking and, via cascade, its resources.
func (s *BookingService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ListResources returns deliverable metadata for a booking in scope.
func (s *BookingService) ListResources(ctx context.Context, actor *domain.User, bookingID string) ([]domain.Resource, error) {
	if _, err := s.Get(ctx, actor, bookingID); err != nil {
		return nil, err
	}
	resources, err := s.resources.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return resources, nil
}

// AttachResource records deliverable metadata against a booking.
func (s *BookingService) AttachResource(ctx context.Context, actor *domain.User, bookingID string, input ResourceInput) (*domain.Resource, error) {
	if input.FileName == "" || input.StorageKey == "" {
		return nil, apperrors.NewValidationError("file_name and storage_key required", nil)
	}
	if input.Type != domain.ResourceTypeImage && input.Type != domain.ResourceTypeGeoTIFF {
		return nil, apperrors.NewValidationError("unknown resource type", map[string]any{"type": input.Type})
	}
	if _, err := s.Get(ctx, actor, bookingID); err != nil {
		return nil, err
	}

	resource := &domain.Resource{
		BookingID:  bookingID,
		Type:       input.Type,
		FileName:   input.FileName,
		MimeType:   input.MimeType,
		SizeBytes:  input.SizeBytes,
		StorageKey: input.StorageKey,
	}
	if err := s.resources.Create(ctx, resource); err != nil {
		return nil, apperrors.MapError(err)
	}
	return resource, nil
}

// SendReminders emits booking_reminder events for scheduled flights within
// the lookahead window that have not been reminded yet. Called by the cron
// worker.
func (s *BookingService) SendReminders(ctx context.Context, lookahead time.Duration) (int, error) {
	now := time.Now()
	due, err := s.bookings.ListDueForReminder(ctx, now, now.Add(lookahead))
	if err != nil {
		return 0, apperrors.MapError(err)
	}

	sent := 0
	for i := range due {
		booking := &due[i]
		if booking.FlightDate == nil {
			continue
		}
		s.publish(ctx, events.Event{
			Type:      events.EventBookingReminder,
			CompanyID: booking.CompanyID,
			Payload: events.BookingReminderPayload{
				BookingID:  booking.ID,
				AssetName:  booking.AssetName,
				FlightDate: *booking.FlightDate,
			},
		})
		if err := s.bookings.MarkReminderSent(ctx, booking.ID, now); err != nil {
			return sent, apperrors.MapError(err)
		}
		sent++
	}
	return sent, nil
}

func (s *BookingService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
