package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Celebrity is a public profile in the directory.
type Celebrity struct {
	ID              uuid.UUID      `db:"id"`
	Name            string         `db:"name"`
	Category        pq.StringArray `db:"category"`
	Country         string         `db:"country"`
	Description     *string        `db:"description"`
	ProfileImageURL *string        `db:"profile_image_url"`
	InstagramHandle *string        `db:"instagram_handle"`
	YoutubeChannel  *string        `db:"youtube_channel"`
	SpotifyID       *string        `db:"spotify_id"`
	IMDbID          *string        `db:"imdb_id"`
	FanbaseCount    int            `db:"fanbase_count"`
	// Setlist for performers, keynote topics for speakers.
	Topics    pq.StringArray `db:"sample_setlist_or_keynote_topics"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// Normalize replaces absent lists with empty ones.
func (c *Celebrity) Normalize() {
	if c.Category == nil {
		c.Category = pq.StringArray{}
	}
	if c.Topics == nil {
		c.Topics = pq.StringArray{}
	}
}

// Clean trims list entries and drops blank ones.
func (c *Celebrity) Clean() {
	if c.Category != nil {
		c.Category = cleanList(c.Category)
	}
	if c.Topics != nil {
		c.Topics = cleanList(c.Topics)
	}
}

func cleanList(in []string) []string {
	out := []string{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the fields required on creation.
func (c *Celebrity) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCelebrity)
	}
	if len(cleanList(c.Category)) == 0 {
		return fmt.Errorf("%w: at least one category is required", ErrInvalidCelebrity)
	}
	if strings.TrimSpace(c.Country) == "" {
		return fmt.Errorf("%w: country is required", ErrInvalidCelebrity)
	}
	if c.FanbaseCount < 0 {
		return fmt.Errorf("%w: fanbaseCount must not be negative", ErrInvalidCelebrity)
	}
	return nil
}

// Patch is a partial update. Nil fields are left unchanged; lists replace
// the stored list wholesale.
type Patch struct {
	Name            *string
	Category        *[]string
	Country         *string
	Description     *string
	ProfileImageURL *string
	InstagramHandle *string
	YoutubeChannel  *string
	SpotifyID       *string
	IMDbID          *string
	FanbaseCount    *int
	Topics          *[]string
}

func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Clean returns p with list entries trimmed and blank ones dropped.
func (p Patch) Clean() Patch {
	if p.Category != nil {
		l := cleanList(*p.Category)
		p.Category = &l
	}
	if p.Topics != nil {
		l := cleanList(*p.Topics)
		p.Topics = &l
	}
	return p
}

func (p Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidCelebrity)
	}
	if p.Category != nil && len(cleanList(*p.Category)) == 0 {
		return fmt.Errorf("%w: at least one category is required", ErrInvalidCelebrity)
	}
	if p.Country != nil && strings.TrimSpace(*p.Country) == "" {
		return fmt.Errorf("%w: country must not be empty", ErrInvalidCelebrity)
	}
	if p.FanbaseCount != nil && *p.FanbaseCount < 0 {
		return fmt.Errorf("%w: fanbaseCount must not be negative", ErrInvalidCelebrity)
	}
	return nil
}

type Repository interface {
	Create(ctx context.Context, c *Celebrity) error
	List(ctx context.Context) ([]Celebrity, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Celebrity, error)
	GetByName(ctx context.Context, name string) (*Celebrity, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*Celebrity, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CelebrityFinder is the read path other modules depend on.
type CelebrityFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Celebrity, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
