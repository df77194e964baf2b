package repository

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/swych-ai/swych_api/internal/models"
)

// ClientFilter narrows and pages a client listing. A zero Search means no
// search filter; Limit/Offset are applied as given (the service clamps them).
type ClientFilter struct {
	Search string
	Limit  int
	Offset int
}

// ClientRepository provides data access methods for the clients table.
type ClientRepository struct {
	db *sqlx.DB
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `id, company_name, logo_url, description, website_url, created_at`

// GetByID finds a client by numeric id. Returns sql.ErrNoRows when absent.
func (r *ClientRepository) GetByID(id int) (*models.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	var c models.Client
	if err := r.db.Get(&c, q, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// List retrieves clients matching the filter, newest first.
func (r *ClientRepository) List(f ClientFilter) ([]*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`

	var conds []string
	var args []any
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		p := fmt.Sprintf("$%d", len(args))
		conds = append(conds, fmt.Sprintf("(company_name ILIKE %s OR description ILIKE %s)", p, p))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	clients := []*models.Client{}
	if err := r.db.Select(&clients, query, args...); err != nil {
		return nil, err
	}
	return clients, nil
}

// Create inserts a new client. The store assigns id and created_at, which are
// written back onto the model.
func (r *ClientRepository) Create(c *models.Client) error {
	const q = `INSERT INTO clients (company_name, logo_url, description, website_url)
	           VALUES ($1, $2, $3, $4)
	           RETURNING id, created_at`

	return r.db.QueryRowx(q,
		c.CompanyName,
		c.LogoURL,
		c.Description,
		c.WebsiteURL,
	).Scan(&c.ID, &c.CreatedAt)
}

// Update writes all mutable columns of an existing client. created_at is
// immutable and never touched.
func (r *ClientRepository) Update(c *models.Client) error {
	const q = `UPDATE clients
	           SET company_name = $1, logo_url = $2, description = $3, website_url = $4
	           WHERE id = $5`

	_, err := r.db.Exec(q, c.CompanyName, c.LogoURL, c.Description, c.WebsiteURL, c.ID)
	return err
}

// Delete removes a client by id and returns the deleted row.
// Returns sql.ErrNoRows when the id does not exist.
func (r *ClientRepository) Delete(id int) (*models.Client, error) {
	const q = `DELETE FROM clients WHERE id = $1 RETURNING ` + clientColumns
	var c models.Client
	if err := r.db.QueryRowx(q, id).StructScan(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
