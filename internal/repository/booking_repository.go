package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlexMorrigan04/pilotforce-api/internal/domain"
)

// BookingFilter captures listing parameters.
type BookingFilter struct {
	CompanyID *string
	UserID    *string
	AssetID   *string
	Statuses  []domain.BookingStatus
	Limit     int
	Offset    int
}

// BookingRepository encapsulates booking persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListWithFilter(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	ListDueForReminder(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
	MarkReminderSent(ctx context.Context, id string, at time.Time) error
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository instantiates repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingColumns = `id, company_id, user_id, asset_id, asset_name, status, job_types, flight_date,
        scheduling, service_options, site_contact, postcode, location, notes, reminder_sent_at, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	options, contact, err := marshalBookingJSON(booking)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO bookings (company_id, user_id, asset_id, asset_name, status, job_types, flight_date,
            scheduling, service_options, site_contact, postcode, location, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		booking.CompanyID,
		booking.UserID,
		booking.AssetID,
		booking.AssetName,
		booking.Status,
		booking.JobTypes,
		booking.FlightDate,
		booking.Scheduling,
		options,
		contact,
		booking.Postcode,
		booking.Location,
		booking.Notes,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *bookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	options, contact, err := marshalBookingJSON(booking)
	if err != nil {
		return err
	}

	const query = `
        UPDATE bookings SET status=$1, job_types=$2, flight_date=$3, scheduling=$4, service_options=$5,
            site_contact=$6, postcode=$7, location=$8, notes=$9, updated_at=NOW()
        WHERE id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		booking.Status,
		booking.JobTypes,
		booking.FlightDate,
		booking.Scheduling,
		options,
		contact,
		booking.Postcode,
		booking.Location,
		booking.Notes,
		booking.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id=$1`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, pgx.ErrNoRows
	}
	booking, err := scanBooking(rows)
	if err != nil {
		return nil, err
	}
	return booking, rows.Err()
}

func (r *bookingRepository) ListWithFilter(ctx context.Context, filter BookingFilter) ([]domain.Booking, error) {
	base := `SELECT ` + bookingColumns + ` FROM bookings`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CompanyID != nil {
		args = append(args, *filter.CompanyID)
		clauses = append(clauses, fmt.Sprintf("company_id=$%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.AssetID != nil {
		args = append(args, *filter.AssetID)
		clauses = append(clauses, fmt.Sprintf("asset_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) ListDueForReminder(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
        WHERE status=$1 AND reminder_sent_at IS NULL AND flight_date >= $2 AND flight_date <= $3`
	rows, err := r.pool.Query(ctx, query, domain.BookingStatusScheduled, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) MarkReminderSent(ctx context.Context, id string, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE bookings SET reminder_sent_at=$1, updated_at=NOW() WHERE id=$2`, at, id)
	return err
}

func marshalBookingJSON(booking *domain.Booking) (options, contact []byte, err error) {
	if booking.ServiceOptions != nil {
		options, err = json.Marshal(booking.ServiceOptions)
		if err != nil {
			return nil, nil, err
		}
	}
	if booking.SiteContact != nil {
		contact, err = json.Marshal(booking.SiteContact)
		if err != nil {
			return nil, nil, err
		}
	}
	return options, contact, nil
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var result []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *booking)
	}
	return result, rows.Err()
}

func scanBooking(rows pgx.Rows) (*domain.Booking, error) {
	var (
		booking domain.Booking
		options []byte
		contact []byte
	)
	if err := rows.Scan(
		&booking.ID,
		&booking.CompanyID,
		&booking.UserID,
		&booking.AssetID,
		&booking.AssetName,
		&booking.Status,
		&booking.JobTypes,
		&booking.FlightDate,
		&booking.Scheduling,
		&options,
		&contact,
		&booking.Postcode,
		&booking.Location,
		&booking.Notes,
		&booking.ReminderSentAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &booking.ServiceOptions); err != nil {
			return nil, err
		}
	}
	if len(contact) > 0 {
		var sc domain.SiteContact
		if err := json.Unmarshal(contact, &sc); err != nil {
			return nil, err
		}
		booking.SiteContact = &sc
	}
	return &booking, nil
}
