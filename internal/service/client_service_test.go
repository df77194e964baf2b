package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swych-ai/swych_api/internal/models"
	"github.com/swych-ai/swych_api/internal/repository"
	"github.com/swych-ai/swych_api/internal/utils"
)

type fakeClientStore struct {
	clients    map[int]*models.Client
	nextID     int
	lastFilter repository.ClientFilter
	listErr    error
}

func newFakeClientStore() *fakeClientStore {
	return &fakeClientStore{clients: make(map[int]*models.Client), nextID: 1}
}

func (f *fakeClientStore) GetByID(id int) (*models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClientStore) List(filter repository.ClientFilter) ([]*models.Client, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*models.Client{}
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClientStore) Create(c *models.Client) error {
	c.ID = f.nextID
	f.nextID++
	cp := *c
	f.clients[c.ID] = &cp
	return nil
}

func (f *fakeClientStore) Update(c *models.Client) error {
	cp := *c
	f.clients[c.ID] = &cp
	return nil
}

func (f *fakeClientStore) Delete(id int) (*models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	delete(f.clients, id)
	return c, nil
}

func optStr(v string) utils.OptionalString {
	return utils.OptionalString{Set: true, Value: v}
}

func optNull() utils.OptionalString {
	return utils.OptionalString{Set: true, Null: true}
}

func TestClientServiceCreate(t *testing.T) {
	tests := []struct {
		name     string
		req      ClientRequest
		wantCode string
	}{
		{
			name: "valid full payload",
			req: ClientRequest{
				CompanyName: optStr("TechCorp"),
				LogoURL:     optStr("https://cdn.example.com/logo.png"),
				Description: optStr("Enterprise software"),
				WebsiteURL:  optStr("https://techcorp.example.com"),
			},
		},
		{
			name: "company name only",
			req:  ClientRequest{CompanyName: optStr("Solo")},
		},
		{
			name:     "missing company name",
			req:      ClientRequest{Description: optStr("no name")},
			wantCode: "INVALID_COMPANY_NAME",
		},
		{
			name:     "blank company name",
			req:      ClientRequest{CompanyName: optStr("   ")},
			wantCode: "INVALID_COMPANY_NAME",
		},
		{
			name:     "null company name",
			req:      ClientRequest{CompanyName: optNull()},
			wantCode: "INVALID_COMPANY_NAME",
		},
		{
			name: "website url without scheme",
			req: ClientRequest{
				CompanyName: optStr("TechCorp"),
				WebsiteURL:  optStr("techcorp.example.com"),
			},
			wantCode: "INVALID_WEBSITE_URL",
		},
		{
			name: "wrongly typed company name",
			req: ClientRequest{
				CompanyName: utils.OptionalString{Set: true, Malformed: true},
			},
			wantCode: "INVALID_COMPANY_NAME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewClientService(newFakeClientStore(), nil)
			client, err := svc.Create(context.Background(), &tt.req)
			if tt.wantCode != "" {
				requireAPIError(t, err, 400, tt.wantCode)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, client.ID)
		})
	}
}

func TestClientServiceCreateTrimsFields(t *testing.T) {
	store := newFakeClientStore()
	svc := NewClientService(store, nil)

	client, err := svc.Create(context.Background(), &ClientRequest{
		CompanyName: optStr("  TechCorp  "),
		Description: optStr("   "),
	})
	require.NoError(t, err)
	assert.Equal(t, "TechCorp", client.CompanyName)
	// Empty-after-trim optional fields normalize to nil.
	assert.Nil(t, client.Description)
}

func TestClientServiceGetNotFound(t *testing.T) {
	svc := NewClientService(newFakeClientStore(), nil)
	_, err := svc.Get(999999)
	requireAPIError(t, err, 404, "CLIENT_NOT_FOUND")
}

func TestClientServiceListClampsPagination(t *testing.T) {
	tests := []struct {
		name       string
		filter     repository.ClientFilter
		wantLimit  int
		wantOffset int
	}{
		{"defaults", repository.ClientFilter{}, 10, 0},
		{"limit above cap", repository.ClientFilter{Limit: 500}, 100, 0},
		{"limit at cap", repository.ClientFilter{Limit: 100}, 100, 0},
		{"negative limit", repository.ClientFilter{Limit: -3}, 10, 0},
		{"negative offset", repository.ClientFilter{Offset: -5}, 10, 0},
		{"passthrough", repository.ClientFilter{Limit: 25, Offset: 50}, 25, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeClientStore()
			svc := NewClientService(store, nil)
			_, err := svc.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, store.lastFilter.Limit)
			assert.Equal(t, tt.wantOffset, store.lastFilter.Offset)
		})
	}
}

func TestClientServiceUpdate(t *testing.T) {
	store := newFakeClientStore()
	svc := NewClientService(store, nil)

	created, err := svc.Create(context.Background(), &ClientRequest{
		CompanyName: optStr("TechCorp"),
		Description: optStr("Enterprise software"),
	})
	require.NoError(t, err)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), created.ID, &ClientRequest{
			CompanyName: optStr("TechCorp Global"),
		})
		require.NoError(t, err)
		assert.Equal(t, "TechCorp Global", updated.CompanyName)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "Enterprise software", *updated.Description)
	})

	t.Run("explicit null clears optional field", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), created.ID, &ClientRequest{
			Description: optNull(),
		})
		require.NoError(t, err)
		assert.Nil(t, updated.Description)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := svc.Update(context.Background(), created.ID, &ClientRequest{})
		requireAPIError(t, err, 400, "NO_UPDATES")
	})

	t.Run("invalid field rejects whole update", func(t *testing.T) {
		_, err := svc.Update(context.Background(), created.ID, &ClientRequest{
			CompanyName: optStr("Valid"),
			WebsiteURL:  optStr("not a url"),
		})
		requireAPIError(t, err, 400, "INVALID_WEBSITE_URL")
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 999999, &ClientRequest{
			CompanyName: optStr("Ghost"),
		})
		requireAPIError(t, err, 404, "CLIENT_NOT_FOUND")
	})
}

func TestClientServiceDelete(t *testing.T) {
	store := newFakeClientStore()
	svc := NewClientService(store, nil)

	created, err := svc.Create(context.Background(), &ClientRequest{CompanyName: optStr("TechCorp")})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = svc.Delete(context.Background(), created.ID)
	requireAPIError(t, err, 404, "CLIENT_NOT_FOUND")
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*utils.APIError)
	require.True(t, ok, "expected *utils.APIError, got %T: %v", err, err)
	assert.Equal(t, status, apiErr.Status)
	assert.Equal(t, code, apiErr.Code)
}

// Exercise the JSON round trip the listing cache relies on.
func TestClientListingRoundTrip(t *testing.T) {
	desc := "Enterprise software"
	in := []*models.Client{{ID: 1, CompanyName: "TechCorp", Description: &desc}}

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out []*models.Client
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "TechCorp", out[0].CompanyName)
}
