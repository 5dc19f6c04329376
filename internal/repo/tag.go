package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripplanner/backend/internal/domain"
)

// TagRepo defines the persistence operations for Tags and the event_tags join table.
type TagRepo interface {
	// Upsert inserts a tag by slug, or returns the existing tag if the slug
	// already exists. The name of the first creator is preserved on conflict.
	Upsert(ctx context.Context, name, slug string) (domain.Tag, error)

	// List returns all tags whose slug starts with prefix, ordered by slug.
	// If prefix is empty, all tags are returned.
	List(ctx context.Context, prefix string) ([]domain.Tag, error)

	// ListPaged returns one page of tags matching the slug prefix and the total count.
	// If prefix is empty, all tags are included in the result set.
	ListPaged(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error)

	// AddToEvent links a tag to an event. Linking twice is not an error.
	AddToEvent(ctx context.Context, eventID, tagID uuid.UUID) error

	// RemoveFromEvent unlinks a tag from an event by slug.
	// Returns domain.ErrNotFound if the tag is not linked to the event.
	RemoveFromEvent(ctx context.Context, eventID uuid.UUID, slug string) error

	// ListByEvent returns all tags linked to an event, ordered by slug.
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Tag, error)

	// SlugsByTrip returns the tag slugs of every event on a trip, keyed by
	// event ID. Events without tags are absent from the map.
	SlugsByTrip(ctx context.Context, tripID uuid.UUID) (map[uuid.UUID][]string, error)
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

// Upsert inserts a tag or returns the existing row on slug conflict.
// DO UPDATE SET is a no-op write that makes RETURNING produce the existing
// row; DO NOTHING would return no row on conflict.
func (r *pgTagRepo) Upsert(ctx context.Context, name, slug string) (domain.Tag, error) {
	const q = `
		INSERT INTO tags (name, slug)
		VALUES (@name, @slug)
		ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
		RETURNING id, name, slug, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name, "slug": slug})
	result, err := scanTag(row)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.Upsert: %w", err)
	}
	return result, nil
}

// List returns all tags whose slug starts with prefix, ordered by slug.
// Pass prefix="" to return all tags.
func (r *pgTagRepo) List(ctx context.Context, prefix string) ([]domain.Tag, error) {
	const q = `
		SELECT id, name, slug, created_at
		FROM tags
		WHERE slug LIKE @prefix || '%'
		ORDER BY slug`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"prefix": escapeLike(prefix)})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: %w", err)
	}
	tags, err := collectTags(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: %w", err)
	}
	return tags, nil
}

// ListPaged returns one page of tags matching prefix ordered by slug.
func (r *pgTagRepo) ListPaged(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error) {
	prefix = escapeLike(prefix)

	var total int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM tags WHERE slug LIKE @prefix || '%'`,
		pgx.NamedArgs{"prefix": prefix}).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TagRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT id, name, slug, created_at
		FROM tags
		WHERE slug LIKE @prefix || '%'
		ORDER BY slug
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"prefix": prefix,
		"limit":  p.Limit,
		"offset": p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TagRepo.ListPaged: %w", err)
	}
	tags, err := collectTags(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TagRepo.ListPaged: %w", err)
	}
	return tags, total, nil
}

// AddToEvent links a tag to an event. Idempotent via ON CONFLICT DO NOTHING.
func (r *pgTagRepo) AddToEvent(ctx context.Context, eventID, tagID uuid.UUID) error {
	const q = `
		INSERT INTO event_tags (event_id, tag_id)
		VALUES (@event_id, @tag_id)
		ON CONFLICT (event_id, tag_id) DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"event_id": eventID, "tag_id": tagID})
	if err != nil {
		return fmt.Errorf("repo.TagRepo.AddToEvent: %w", err)
	}
	return nil
}

// RemoveFromEvent unlinks a tag from an event using a slug-based subquery lookup.
func (r *pgTagRepo) RemoveFromEvent(ctx context.Context, eventID uuid.UUID, slug string) error {
	const q = `
		DELETE FROM event_tags
		WHERE event_id = @event_id
		  AND tag_id = (SELECT id FROM tags WHERE slug = @slug)`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"event_id": eventID, "slug": slug})
	if err != nil {
		return fmt.Errorf("repo.TagRepo.RemoveFromEvent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TagRepo.RemoveFromEvent: %w", domain.ErrNotFound)
	}
	return nil
}

// ListByEvent returns all tags linked to an event, ordered by slug.
func (r *pgTagRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Tag, error) {
	const q = `
		SELECT t.id, t.name, t.slug, t.created_at
		FROM tags t
		JOIN event_tags et ON et.tag_id = t.id
		WHERE et.event_id = @event_id
		ORDER BY t.slug`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.ListByEvent: %w", err)
	}
	tags, err := collectTags(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.ListByEvent: %w", err)
	}
	return tags, nil
}

func (r *pgTagRepo) SlugsByTrip(ctx context.Context, tripID uuid.UUID) (map[uuid.UUID][]string, error) {
	const q = `
		SELECT et.event_id, t.slug
		FROM event_tags et
		JOIN tags t   ON t.id = et.tag_id
		JOIN events e ON e.id = et.event_id
		WHERE e.trip_id = @trip_id
		ORDER BY et.event_id, t.slug`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.SlugsByTrip: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]string)
	for rows.Next() {
		var (
			eventID pgtype.UUID
			slug    string
		)
		if err := rows.Scan(&eventID, &slug); err != nil {
			return nil, fmt.Errorf("repo.TagRepo.SlugsByTrip: scan: %w", err)
		}
		id := uuid.UUID(eventID.Bytes)
		out[id] = append(out[id], slug)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TagRepo.SlugsByTrip: rows: %w", err)
	}
	return out, nil
}

// escapeLike escapes the LIKE wildcards % and _ so a prefix matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// scanTag maps a single database row into a domain.Tag.
func scanTag(s scanner) (domain.Tag, error) {
	var (
		t  domain.Tag
		id pgtype.UUID
	)
	err := s.Scan(&id, &t.Name, &t.Slug, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tag{}, domain.ErrNotFound
		}
		return domain.Tag{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}

func collectTags(rows pgx.Rows) ([]domain.Tag, error) {
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return tags, nil
}
