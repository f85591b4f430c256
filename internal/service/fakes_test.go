package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
	"github.com/AlexMorrigan04/pilotforce-api/internal/events"
	"github.com/AlexMorrigan04/pilotforce-api/internal/repository"
	"github.com/AlexMorrigan04/pilotforce-api/internal/session"
)

// fakeUserRepo is an in-memory UserRepository keyed by ID and email.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) add(user *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		r.nextID++
		user.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	copied := *user
	r.users[user.ID] = &copied
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.add(user)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.User
	for _, user := range r.users {
		if filter.CompanyID != nil && user.CompanyID != *filter.CompanyID {
			continue
		}
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		if filter.Status != nil && user.Status != *filter.Status {
			continue
		}
		result = append(result, *user)
	}
	return result, nil
}

func (r *fakeUserRepo) CountByCompany(_ context.Context, companyID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, user := range r.users {
		if user.CompanyID == companyID {
			count++
		}
	}
	return count, nil
}

// fakeCompanyRepo is an in-memory CompanyRepository.
type fakeCompanyRepo struct {
	mu        sync.Mutex
	nextID    int
	companies map[string]*domain.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]*domain.Company)}
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *domain.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	company.ID = fmt.Sprintf("company-%d", r.nextID)
	company.CreatedAt = time.Now()
	company.UpdatedAt = company.CreatedAt
	copied := *company
	r.companies[company.ID] = &copied
	return nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, company *domain.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[company.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *company
	r.companies[company.ID] = &copied
	return nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.companies, id)
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	company, ok := r.companies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *company
	return &copied, nil
}

func (r *fakeCompanyRepo) GetByDomain(_ context.Context, emailDomain string) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, company := range r.companies {
		if strings.EqualFold(company.EmailDomain, emailDomain) {
			copied := *company
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCompanyRepo) List(_ context.Context, filter repository.CompanyFilter) ([]domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Company
	for _, company := range r.companies {
		if filter.Status != nil && company.Status != *filter.Status {
			continue
		}
		result = append(result, *company)
	}
	return result, nil
}

// fakeAssetRepo is an in-memory AssetRepository.
type fakeAssetRepo struct {
	mu     sync.Mutex
	nextID int
	assets map[string]*domain.Asset
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{assets: make(map[string]*domain.Asset)}
}

func (r *fakeAssetRepo) Create(_ context.Context, asset *domain.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	asset.ID = fmt.Sprintf("asset-%d", r.nextID)
	asset.CreatedAt = time.Now()
	asset.UpdatedAt = asset.CreatedAt
	copied := *asset
	r.assets[asset.ID] = &copied
	return nil
}

func (r *fakeAssetRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.assets, id)
	return nil
}

func (r *fakeAssetRepo) GetByID(_ context.Context, id string) (*domain.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	asset, ok := r.assets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *asset
	return &copied, nil
}

func (r *fakeAssetRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]domain.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Asset
	for _, asset := range r.assets {
		if asset.CompanyID == companyID {
			result = append(result, *asset)
		}
	}
	return result, nil
}

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int
	bookings map[string]*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*domain.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	booking.ID = fmt.Sprintf("booking-%d", r.nextID)
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[booking.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) ListWithFilter(_ context.Context, filter repository.BookingFilter) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Booking
	for _, booking := range r.bookings {
		if filter.CompanyID != nil && booking.CompanyID != *filter.CompanyID {
			continue
		}
		if filter.UserID != nil && booking.UserID != *filter.UserID {
			continue
		}
		if filter.AssetID != nil && booking.AssetID != *filter.AssetID {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, status := range filter.Statuses {
				if booking.Status == status {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		result = append(result, *booking)
	}
	return result, nil
}

func (r *fakeBookingRepo) ListDueForReminder(_ context.Context, from, to time.Time) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Booking
	for _, booking := range r.bookings {
		if booking.Status != domain.BookingStatusScheduled || booking.FlightDate == nil {
			continue
		}
		if booking.ReminderSentAt != nil {
			continue
		}
		if booking.FlightDate.Before(from) || booking.FlightDate.After(to) {
			continue
		}
		result = append(result, *booking)
	}
	return result, nil
}

func (r *fakeBookingRepo) MarkReminderSent(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return pgx.ErrNoRows
	}
	booking.ReminderSentAt = &at
	return nil
}

// fakeResourceRepo is an in-memory ResourceRepository.
type fakeResourceRepo struct {
	mu        sync.Mutex
	nextID    int
	resources map[string]*domain.Resource
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{resources: make(map[string]*domain.Resource)}
}

func (r *fakeResourceRepo) Create(_ context.Context, resource *domain.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	resource.ID = fmt.Sprintf("resource-%d", r.nextID)
	resource.CreatedAt = time.Now()
	copied := *resource
	r.resources[resource.ID] = &copied
	return nil
}

func (r *fakeResourceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resources[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.resources, id)
	return nil
}

func (r *fakeResourceRepo) ListByBooking(_ context.Context, bookingID string) ([]domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Resource
	for _, resource := range r.resources {
		if resource.BookingID == bookingID {
			result = append(result, *resource)
		}
	}
	return result, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}

// memSessionStore backs the session manager in tests.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]session.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]session.Session)}
}

func (s *memSessionStore) Put(_ context.Context, token string, sess session.Session, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = sess
	return nil
}

func (s *memSessionStore) Consume(_ context.Context, token string) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	delete(s.sessions, token)
	return sess, nil
}

func (s *memSessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
