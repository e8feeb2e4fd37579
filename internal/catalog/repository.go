package catalog

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var ErrNotFound = errors.New("not found")

// Reader is the read-only view of the static artist and event records.
type Reader interface {
	ListArtists(ctx context.Context) ([]*Artist, error)
	GetArtist(ctx context.Context, id int64) (*Artist, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
}

type Repository struct {
	db *sql.DB
}

var _ Reader = (*Repository)(nil)

// NewRepository opens the catalog database. ":memory:" gives a private database
// that lives as long as the repository.
func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// every pooled connection to :memory: would be its own empty database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

// RunMigrations creates and seeds the schema from the embedded migrations.
func (r *Repository) RunMigrations() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) ListArtists(ctx context.Context) ([]*Artist, error) {
	query := `
		SELECT id, slug, name, genre, bio, image_url, spotify_url, instagram_url, youtube_url
		FROM artists
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	artists := make([]*Artist, 0)
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return artists, nil
}

func (r *Repository) GetArtist(ctx context.Context, id int64) (*Artist, error) {
	query := `
		SELECT id, slug, name, genre, bio, image_url, spotify_url, instagram_url, youtube_url
		FROM artists
		WHERE id = $1
	`

	a, err := scanArtist(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("artist %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *Repository) ListEvents(ctx context.Context) ([]*Event, error) {
	query := `
		SELECT id, artist_id, title, venue, city, country, starts_at, ticket_url, status
		FROM events
		ORDER BY starts_at, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]*Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return events, nil
}

func (r *Repository) GetEvent(ctx context.Context, id int64) (*Event, error) {
	query := `
		SELECT id, artist_id, title, venue, city, country, starts_at, ticket_url, status
		FROM events
		WHERE id = $1
	`

	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArtist(s scanner) (*Artist, error) {
	a := &Artist{}
	err := s.Scan(
		&a.ID,
		&a.Slug,
		&a.Name,
		&a.Genre,
		&a.Bio,
		&a.ImageURL,
		&a.SpotifyURL,
		&a.InstagramURL,
		&a.YouTubeURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan artist: %w", err)
	}
	return a, nil
}

func scanEvent(s scanner) (*Event, error) {
	e := &Event{}
	var startsAt, status string
	err := s.Scan(
		&e.ID,
		&e.ArtistID,
		&e.Title,
		&e.Venue,
		&e.City,
		&e.Country,
		&startsAt,
		&e.TicketURL,
		&status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}

	e.StartsAt, err = time.Parse(time.RFC3339, startsAt)
	if err != nil {
		return nil, fmt.Errorf("event %d has invalid starts_at %q: %w", e.ID, startsAt, err)
	}
	e.Status = EventStatus(status)
	return e, nil
}
