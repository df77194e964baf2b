package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/swych-ai/swych_api/internal/cache"
	"github.com/swych-ai/swych_api/internal/models"
	"github.com/swych-ai/swych_api/internal/repository"
	"github.com/swych-ai/swych_api/internal/utils"
)

// ClientStore is the persistence surface ClientService depends on.
// *repository.ClientRepository satisfies it.
type ClientStore interface {
	GetByID(id int) (*models.Client, error)
	List(f repository.ClientFilter) ([]*models.Client, error)
	Create(c *models.Client) error
	Update(c *models.Client) error
	Delete(id int) (*models.Client, error)
}

// ClientService handles client validation and business logic.
type ClientService struct {
	store ClientStore
	cache *cache.ListingCache
}

// NewClientService constructs a ClientService. listingCache may be nil, in
// which case every listing reads the store directly.
func NewClientService(store ClientStore, listingCache *cache.ListingCache) *ClientService {
	return &ClientService{store: store, cache: listingCache}
}

// ClientRequest is the create/update payload for a client. Every field is
// optional at the decoding level so the service can produce field-specific
// validation errors; create requires companyName.
type ClientRequest struct {
	CompanyName utils.OptionalString `json:"companyName"`
	LogoURL     utils.OptionalString `json:"logoUrl"`
	Description utils.OptionalString `json:"description"`
	WebsiteURL  utils.OptionalString `json:"websiteUrl"`
}

// Get retrieves a client by id.
func (s *ClientService) Get(id int) (*models.Client, error) {
	client, err := s.store.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NotFound("CLIENT_NOT_FOUND", "Client not found")
		}
		return nil, err
	}
	return client, nil
}

// List retrieves clients matching the filter, consulting the listing cache
// first. Limit is defaulted to 10 and clamped to 100; negative offsets
// become 0.
func (s *ClientService) List(ctx context.Context, f repository.ClientFilter) ([]*models.Client, error) {
	f.Limit = clampLimit(f.Limit)
	if f.Offset < 0 {
		f.Offset = 0
	}

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, "clients", f.Search, 0, f.Limit, f.Offset); ok {
			var out []*models.Client
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
			if err := s.cache.Set(ctx, "clients", f.Search, 0, f.Limit, f.Offset, raw); err != nil {
				log.Warn().Err(err).Msg("failed to cache client listing")
			}
		}
	}
	return out, nil
}

// Create validates and stores a new client, returning the stored record with
// its assigned id and timestamp.
func (s *ClientService) Create(ctx context.Context, req *ClientRequest) (*models.Client, error) {
	companyName, err := requiredString(req.CompanyName, "INVALID_COMPANY_NAME", "Company name is required and must be a non-empty string")
	if err != nil {
		return nil, err
	}

	logoURL, err := optionalString(req.LogoURL, "INVALID_REQUEST", "logoUrl must be a string")
	if err != nil {
		return nil, err
	}
	description, err := optionalString(req.Description, "INVALID_REQUEST", "description must be a string")
	if err != nil {
		return nil, err
	}
	websiteURL, err := optionalWebsiteURL(req.WebsiteURL)
	if err != nil {
		return nil, err
	}

	client := &models.Client{
		CompanyName: companyName,
		LogoURL:     logoURL,
		Description: description,
		WebsiteURL:  websiteURL,
	}
	if err := s.store.Create(client); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return client, nil
}

// Update applies the supplied subset of mutable fields to an existing client.
// Each supplied field is re-validated under the create rules; an empty
// payload signals NO_UPDATES.
func (s *ClientService) Update(ctx context.Context, id int, req *ClientRequest) (*models.Client, error) {
	client, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.CompanyName.Set {
		companyName, err := requiredString(req.CompanyName, "INVALID_COMPANY_NAME", "Company name must be a non-empty string")
		if err != nil {
			return nil, err
		}
		client.CompanyName = companyName
		updated = true
	}
	if req.LogoURL.Set {
		logoURL, err := optionalString(req.LogoURL, "INVALID_REQUEST", "logoUrl must be a string")
		if err != nil {
			return nil, err
		}
		client.LogoURL = logoURL
		updated = true
	}
	if req.Description.Set {
		description, err := optionalString(req.Description, "INVALID_REQUEST", "description must be a string")
		if err != nil {
			return nil, err
		}
		client.Description = description
		updated = true
	}
	if req.WebsiteURL.Set {
		websiteURL, err := optionalWebsiteURL(req.WebsiteURL)
		if err != nil {
			return nil, err
		}
		client.WebsiteURL = websiteURL
		updated = true
	}

	if !updated {
		return nil, utils.Invalid("NO_UPDATES", "No valid fields provided for update")
	}

	if err := s.store.Update(client); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return client, nil
}

// Delete removes a client by id and returns the deleted record as
// confirmation.
func (s *ClientService) Delete(ctx context.Context, id int) (*models.Client, error) {
	client, err := s.store.Delete(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NotFound("CLIENT_NOT_FOUND", "Client not found")
		}
		return nil, err
	}
	s.invalidate(ctx)
	return client, nil
}

func (s *ClientService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "clients"); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate client listing cache")
	}
}

// optionalWebsiteURL trims an optional website URL and requires it to parse
// as an absolute URL when non-empty.
func optionalWebsiteURL(f utils.OptionalString) (*string, error) {
	v, err := optionalString(f, "INVALID_WEBSITE_URL", "websiteUrl must be a string")
	if err != nil || v == nil {
		return v, err
	}
	u, perr := url.Parse(*v)
	if perr != nil || u.Scheme == "" || u.Host == "" {
		return nil, utils.Invalid("INVALID_WEBSITE_URL", "Invalid website URL format")
	}
	return v, nil
}

// requiredString validates a required trimmed non-empty string field.
func requiredString(f utils.OptionalString, code, message string) (string, error) {
	if !f.Set || f.Null || f.Malformed {
		return "", utils.Invalid(code, message)
	}
	v := strings.TrimSpace(f.Value)
	if v == "" {
		return "", utils.Invalid(code, message)
	}
	return v, nil
}

// optionalString validates an optional string field. Absent, null, and
// empty-after-trim all normalize to nil.
func optionalString(f utils.OptionalString, code, message string) (*string, error) {
	if !f.Set || f.Null {
		return nil, nil
	}
	if f.Malformed {
		return nil, utils.Invalid(code, message)
	}
	v := strings.TrimSpace(f.Value)
	if v == "" {
		return nil, nil
	}
	return &v, nil
}

// clampLimit applies the listing page-size policy: default 10, cap 100.
func clampLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 100 {
		return 100
	}
	return limit
}
