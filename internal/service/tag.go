package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/repo"
)

// TagService implements business logic for Tag operations.
// Its primary responsibility is slug normalization: all tag identity is
// determined by slug, which is always lowercase and hyphenated.
type TagService struct {
	tags repo.TagRepo
}

// NewTagService constructs a TagService backed by the provided TagRepo.
func NewTagService(tags repo.TagRepo) *TagService {
	return &TagService{tags: tags}
}

// UpsertByName returns the tag whose slug matches name, creating it if needed.
func (s *TagService) UpsertByName(ctx context.Context, name string) (domain.Tag, error) {
	name, slug, err := tagSlug(name)
	if err != nil {
		return domain.Tag{}, err
	}
	tag, err := s.tags.Upsert(ctx, name, slug)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.UpsertByName: %w", err)
	}
	return tag, nil
}

// List returns all tags whose slug starts with prefix. The prefix is
// lowercased first, so "Mus" matches "museums".
func (s *TagService) List(ctx context.Context, prefix string) ([]domain.Tag, error) {
	tags, err := s.tags.List(ctx, normalizePrefix(prefix))
	if err != nil {
		return nil, fmt.Errorf("service.TagService.List: %w", err)
	}
	if tags == nil {
		return []domain.Tag{}, nil
	}
	return tags, nil
}

// ListPaged returns one page of tags matching prefix and the total count.
func (s *TagService) ListPaged(ctx context.Context, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error) {
	tags, total, err := s.tags.ListPaged(ctx, normalizePrefix(prefix), p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TagService.ListPaged: %w", err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, total, nil
}

func normalizePrefix(prefix string) string {
	return strings.ToLower(strings.TrimSpace(prefix))
}

// tagSlug trims name and derives its slug. It returns domain.ErrValidation
// when either comes out empty.
func tagSlug(name string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("%w: tag name is required", domain.ErrValidation)
	}
	slug := slugify(name)
	if slug == "" {
		return "", "", fmt.Errorf("%w: tag name %q has no letters or digits", domain.ErrValidation, name)
	}
	return name, slug, nil
}

// slugify lowercases s and joins its runs of letters and digits with single
// hyphens: "Sintra  Hills!" becomes "sintra-hills".
func slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
