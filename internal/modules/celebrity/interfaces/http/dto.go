package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/celebnet/backend/internal/modules/celebrity/domain"
)

// CreateCelebrityRequest is the body of POST /celebrities.
type CreateCelebrityRequest struct {
	Name                         string   `json:"name"`
	Category                     []string `json:"category"`
	Country                      string   `json:"country"`
	Description                  *string  `json:"description"`
	ProfileImageURL              *string  `json:"profileImageUrl"`
	InstagramHandle              *string  `json:"instagramHandle"`
	YoutubeChannel               *string  `json:"youtubeChannel"`
	SpotifyID                    *string  `json:"spotifyId"`
	IMDbID                       *string  `json:"imdbId"`
	FanbaseCount                 *int     `json:"fanbaseCount"`
	SampleSetlistOrKeynoteTopics []string `json:"sampleSetlistOrKeynoteTopics"`
}

func (r CreateCelebrityRequest) toDomain() *domain.Celebrity {
	c := &domain.Celebrity{
		Name:            r.Name,
		Category:        r.Category,
		Country:         r.Country,
		Description:     r.Description,
		ProfileImageURL: r.ProfileImageURL,
		InstagramHandle: r.InstagramHandle,
		YoutubeChannel:  r.YoutubeChannel,
		SpotifyID:       r.SpotifyID,
		IMDbID:          r.IMDbID,
		Topics:          r.SampleSetlistOrKeynoteTopics,
	}
	if r.FanbaseCount != nil {
		c.FanbaseCount = *r.FanbaseCount
	}
	return c
}

// UpdateCelebrityRequest is the body of PUT /celebrities/{id}. Omitted or
// null fields are left unchanged.
type UpdateCelebrityRequest struct {
	Name                         *string   `json:"name"`
	Category                     *[]string `json:"category"`
	Country                      *string   `json:"country"`
	Description                  *string   `json:"description"`
	ProfileImageURL              *string   `json:"profileImageUrl"`
	InstagramHandle              *string   `json:"instagramHandle"`
	YoutubeChannel               *string   `json:"youtubeChannel"`
	SpotifyID                    *string   `json:"spotifyId"`
	IMDbID                       *string   `json:"imdbId"`
	FanbaseCount                 *int      `json:"fanbaseCount"`
	SampleSetlistOrKeynoteTopics *[]string `json:"sampleSetlistOrKeynoteTopics"`
}

func (r UpdateCelebrityRequest) toPatch() domain.Patch {
	return domain.Patch{
		Name:            r.Name,
		Category:        r.Category,
		Country:         r.Country,
		Description:     r.Description,
		ProfileImageURL: r.ProfileImageURL,
		InstagramHandle: r.InstagramHandle,
		YoutubeChannel:  r.YoutubeChannel,
		SpotifyID:       r.SpotifyID,
		IMDbID:          r.IMDbID,
		FanbaseCount:    r.FanbaseCount,
		Topics:          r.SampleSetlistOrKeynoteTopics,
	}
}

// CelebrityResponse is the public representation of a profile.
type CelebrityResponse struct {
	ID                           uuid.UUID `json:"id"`
	Name                         string    `json:"name"`
	Category                     []string  `json:"category"`
	Country                      string    `json:"country"`
	Description                  *string   `json:"description"`
	ProfileImageURL              *string   `json:"profileImageUrl"`
	InstagramHandle              *string   `json:"instagramHandle"`
	YoutubeChannel               *string   `json:"youtubeChannel"`
	SpotifyID                    *string   `json:"spotifyId"`
	IMDbID                       *string   `json:"imdbId"`
	FanbaseCount                 int       `json:"fanbaseCount"`
	SampleSetlistOrKeynoteTopics []string  `json:"sampleSetlistOrKeynoteTopics"`
	CreatedAt                    time.Time `json:"createdAt"`
	UpdatedAt                    time.Time `json:"updatedAt"`
}

func ToResponse(c *domain.Celebrity) CelebrityResponse {
	return CelebrityResponse{
		ID:                           c.ID,
		Name:                         c.Name,
		Category:                     nonNil(c.Category),
		Country:                      c.Country,
		Description:                  c.Description,
		ProfileImageURL:              c.ProfileImageURL,
		InstagramHandle:              c.InstagramHandle,
		YoutubeChannel:               c.YoutubeChannel,
		SpotifyID:                    c.SpotifyID,
		IMDbID:                       c.IMDbID,
		FanbaseCount:                 c.FanbaseCount,
		SampleSetlistOrKeynoteTopics: nonNil(c.Topics),
		CreatedAt:                    c.CreatedAt,
		UpdatedAt:                    c.UpdatedAt,
	}
}

func ToResponseList(list []domain.Celebrity) []CelebrityResponse {
	out := make([]CelebrityResponse, 0, len(list))
	for i := range list {
		out = append(out, ToResponse(&list[i]))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
