package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/swych-ai/swych_api/internal/cache"
	"github.com/swych-ai/swych_api/internal/models"
	"github.com/swych-ai/swych_api/internal/repository"
	"github.com/swych-ai/swych_api/internal/utils"
)

// TestimonialStore is the persistence surface TestimonialService depends on.
// *repository.TestimonialRepository satisfies it.
type TestimonialStore interface {
	GetByID(id int) (*models.Testimonial, error)
	List(f repository.TestimonialFilter) ([]*models.Testimonial, error)
	Create(t *models.Testimonial) error
	Update(t *models.Testimonial) error
	Delete(id int) (*models.Testimonial, error)
}

// TestimonialService handles testimonial validation and business logic.
type TestimonialService struct {
	store TestimonialStore
	cache *cache.ListingCache
}

// NewTestimonialService constructs a TestimonialService. listingCache may be
// nil, in which case every listing reads the store directly.
func NewTestimonialService(store TestimonialStore, listingCache *cache.ListingCache) *TestimonialService {
	return &TestimonialService{store: store, cache: listingCache}
}

// TestimonialRequest is the create/update payload for a testimonial. Every
// field is optional at the decoding level so the service can produce
// field-specific validation errors in a fixed order.
type TestimonialRequest struct {
	ClientName  utils.OptionalString `json:"clientName"`
	Company     utils.OptionalString `json:"company"`
	Position    utils.OptionalString `json:"position"`
	Testimonial utils.OptionalString `json:"testimonial"`
	Rating      utils.OptionalNumber `json:"rating"`
	AvatarURL   utils.OptionalString `json:"avatarUrl"`
}

// Get retrieves a testimonial by id.
func (s *TestimonialService) Get(id int) (*models.Testimonial, error) {
	t, err := s.store.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NotFound("NOT_FOUND", "Testimonial not found")
		}
		return nil, err
	}
	return t, nil
}

// List retrieves testimonials matching the filter, consulting the listing
// cache first. Limit is defaulted to 10 and clamped to 100; negative offsets
// become 0. Out-of-range rating filters have already been discarded by the
// handler.
func (s *TestimonialService) List(ctx context.Context, f repository.TestimonialFilter) ([]*models.Testimonial, error) {
	f.Limit = clampLimit(f.Limit)
	if f.Offset < 0 {
		f.Offset = 0
	}

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, "testimonials", f.Search, f.Rating, f.Limit, f.Offset); ok {
			var out []*models.Testimonial
			if err := json.Unmarshal(raw, &out); err == nil {
				return out, nil
			}
		}
	}

	out, err := s.store.List(f)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, "testimonials", f.Search, f.Rating, f.Limit, f.Offset, raw); err != nil {
				log.Warn().Err(err).Msg("failed to cache testimonial listing")
			}
		}
	}
	return out, nil
}

// Create validates and stores a new testimonial. Required fields are checked
// in a fixed order and the first violation wins.
func (s *TestimonialService) Create(ctx context.Context, req *TestimonialRequest) (*models.Testimonial, error) {
	clientName, err := requiredString(req.ClientName, "INVALID_CLIENT_NAME", "clientName is required and must be a non-empty string")
	if err != nil {
		return nil, err
	}
	company, err := requiredString(req.Company, "INVALID_COMPANY", "company is required and must be a non-empty string")
	if err != nil {
		return nil, err
	}
	position, err := requiredString(req.Position, "INVALID_POSITION", "position is required and must be a non-empty string")
	if err != nil {
		return nil, err
	}
	text, err := requiredString(req.Testimonial, "INVALID_TESTIMONIAL", "testimonial is required and must be a non-empty string")
	if err != nil {
		return nil, err
	}
	rating, err := requiredRating(req.Rating, "rating is required and must be an integer between 1 and 5")
	if err != nil {
		return nil, err
	}
	avatarURL, err := optionalString(req.AvatarURL, "INVALID_AVATAR_URL", "avatarUrl must be a string")
	if err != nil {
		return nil, err
	}

	t := &models.Testimonial{
		ClientName:  clientName,
		Company:     company,
		Position:    position,
		Testimonial: text,
		Rating:      rating,
		AvatarURL:   avatarURL,
	}
	if err := s.store.Create(t); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return t, nil
}

// Update applies the supplied subset of mutable fields to an existing
// testimonial, re-validating each under the create rules. An empty payload
// signals NO_UPDATES.
func (s *TestimonialService) Update(ctx context.Context, id int, req *TestimonialRequest) (*models.Testimonial, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.ClientName.Set {
		v, err := requiredString(req.ClientName, "INVALID_CLIENT_NAME", "clientName must be a non-empty string")
		if err != nil {
			return nil, err
		}
		t.ClientName = v
		updated = true
	}
	if req.Company.Set {
		v, err := requiredString(req.Company, "INVALID_COMPANY", "company must be a non-empty string")
		if err != nil {
			return nil, err
		}
		t.Company = v
		updated = true
	}
	if req.Position.Set {
		v, err := requiredString(req.Position, "INVALID_POSITION", "position must be a non-empty string")
		if err != nil {
			return nil, err
		}
		t.Position = v
		updated = true
	}
	if req.Testimonial.Set {
		v, err := requiredString(req.Testimonial, "INVALID_TESTIMONIAL", "testimonial must be a non-empty string")
		if err != nil {
			return nil, err
		}
		t.Testimonial = v
		updated = true
	}
	if req.Rating.Set {
		rating, err := requiredRating(req.Rating, "rating must be an integer between 1 and 5")
		if err != nil {
			return nil, err
		}
		t.Rating = rating
		updated = true
	}
	if req.AvatarURL.Set {
		// Explicit null clears the avatar; a string replaces it.
		v, err := optionalString(req.AvatarURL, "INVALID_AVATAR_URL", "avatarUrl must be a string or null")
		if err != nil {
			return nil, err
		}
		t.AvatarURL = v
		updated = true
	}

	if !updated {
		return nil, utils.Invalid("NO_UPDATES", "No valid fields provided for update")
	}

	if err := s.store.Update(t); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return t, nil
}

// Delete removes a testimonial by id and returns the deleted record as
// confirmation.
func (s *TestimonialService) Delete(ctx context.Context, id int) (*models.Testimonial, error) {
	t, err := s.store.Delete(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NotFound("NOT_FOUND", "Testimonial not found")
		}
		return nil, err
	}
	s.invalidate(ctx)
	return t, nil
}

func (s *TestimonialService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "testimonials"); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate testimonial listing cache")
	}
}

// requiredRating validates the 1..5 closed integer range. Any missing, null,
// non-numeric, non-integer, or out-of-range value is INVALID_RATING.
func requiredRating(f utils.OptionalNumber, message string) (int, error) {
	if !f.Set || f.Null || f.Malformed {
		return 0, utils.Invalid("INVALID_RATING", message)
	}
	if f.Value != math.Trunc(f.Value) || f.Value < 1 || f.Value > 5 {
		return 0, utils.Invalid("INVALID_RATING", message)
	}
	return int(f.Value), nil
}
