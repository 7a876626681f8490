/*
Package sqlite provides the SQLite-backed implementation of booking.Store.

PURPOSE:
  Durable persistence for the booking collection in a single local file.
  The contract is a whole-collection round trip: Load returns every record,
  Save lands the given collection atomically.

KEY TABLE:
  bookings: one row per booking, every field round-tripped losslessly.
  Prices are stored as decimal strings (never floats), instants as RFC3339.

DELETION:
  Nothing is ever deleted. EXPIRED and CANCELLED are statuses, not removals,
  so Save only inserts and updates.

CORRUPTION:
  A row that fails to scan or parse is skipped with a logged warning rather
  than failing the whole Load. A booking set that loses a corrupt record
  degrades to conservative availability answers; crashing the query surface
  would lose all of them.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better crash recovery
  and non-blocking readers.

USAGE:
  store, err := sqlite.New("./data/bookings.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - booking/store.go: Contract definition
  - booking/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/booking-engine/booking"
)

// Store implements booking.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		room_type_id TEXT NOT NULL,
		check_in TEXT NOT NULL,
		check_out TEXT NOT NULL,
		adults INTEGER NOT NULL,
		kids INTEGER NOT NULL,
		full_name TEXT,
		phone TEXT,
		email TEXT,
		comment TEXT,
		status TEXT NOT NULL,
		expires_at TEXT,
		breakfast BOOLEAN NOT NULL DEFAULT FALSE,
		breakfast_total TEXT NOT NULL,
		total_price TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Availability scans filter by room type and status
	CREATE INDEX IF NOT EXISTS idx_bookings_room_status
		ON bookings(room_type_id, status);

	CREATE INDEX IF NOT EXISTS idx_bookings_created_at
		ON bookings(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// BOOKING STORE (booking.Store interface)
// =============================================================================

// Load returns all persisted bookings in creation order.
func (s *Store) Load(ctx context.Context) ([]booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, room_type_id, check_in, check_out, adults, kids,
		       full_name, phone, email, comment,
		       status, expires_at, breakfast, breakfast_total, total_price, created_at
		FROM bookings
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			// Skip the corrupt record, keep the rest readable.
			log.Printf("WARNING: skipping unreadable booking record: %v", err)
			continue
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

// Save persists the full collection atomically. Existing rows are updated in
// their mutable fields; new rows are inserted.
func (s *Store) Save(ctx context.Context, bookings []booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO bookings
		(id, room_type_id, check_in, check_out, adults, kids,
		 full_name, phone, email, comment,
		 status, expires_at, breakfast, breakfast_total, total_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			expires_at = excluded.expires_at
	`

	for _, b := range bookings {
		_, err := tx.ExecContext(ctx, query,
			b.ID,
			b.RoomTypeID,
			b.Stay.CheckIn.String(),
			b.Stay.CheckOut.String(),
			b.Guests.Adults,
			b.Guests.Kids,
			b.Contact.FullName,
			b.Contact.Phone,
			b.Contact.Email,
			b.Contact.Comment,
			string(b.Status),
			nullTime(b.ExpiresAt),
			b.Breakfast,
			b.BreakfastTotal.String(),
			b.TotalPrice.String(),
			b.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to save booking %s: %w", b.ID, err)
		}
	}

	return tx.Commit()
}

// =============================================================================
// SCANNING HELPERS
// =============================================================================

func scanBooking(rows *sql.Rows) (booking.Booking, error) {
	var (
		b              booking.Booking
		checkIn        string
		checkOut       string
		fullName       sql.NullString
		phone          sql.NullString
		email          sql.NullString
		comment        sql.NullString
		status         string
		expiresAt      sql.NullString
		breakfastTotal string
		totalPrice     string
		createdAt      string
	)

	err := rows.Scan(
		&b.ID, &b.RoomTypeID, &checkIn, &checkOut,
		&b.Guests.Adults, &b.Guests.Kids,
		&fullName, &phone, &email, &comment,
		&status, &expiresAt, &b.Breakfast, &breakfastTotal, &totalPrice, &createdAt,
	)
	if err != nil {
		return b, fmt.Errorf("failed to scan booking: %w", err)
	}

	in, err := booking.ParseDate(checkIn)
	if err != nil {
		return b, fmt.Errorf("booking %s: %w", b.ID, err)
	}
	out, err := booking.ParseDate(checkOut)
	if err != nil {
		return b, fmt.Errorf("booking %s: %w", b.ID, err)
	}
	stay, err := booking.NewStay(in, out)
	if err != nil {
		return b, fmt.Errorf("booking %s: %w", b.ID, err)
	}
	b.Stay = stay

	b.Contact = booking.Contact{
		FullName: fullName.String,
		Phone:    phone.String,
		Email:    email.String,
		Comment:  comment.String,
	}
	b.Status = booking.Status(status)

	if expiresAt.Valid && expiresAt.String != "" {
		t, err := time.Parse(time.RFC3339, expiresAt.String)
		if err != nil {
			return b, fmt.Errorf("booking %s: bad expires_at: %w", b.ID, err)
		}
		b.ExpiresAt = t
	}

	if b.BreakfastTotal, err = decimal.NewFromString(breakfastTotal); err != nil {
		return b, fmt.Errorf("booking %s: bad breakfast_total: %w", b.ID, err)
	}
	if b.TotalPrice, err = decimal.NewFromString(totalPrice); err != nil {
		return b, fmt.Errorf("booking %s: bad total_price: %w", b.ID, err)
	}

	if b.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return b, fmt.Errorf("booking %s: bad created_at: %w", b.ID, err)
	}

	return b, nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
