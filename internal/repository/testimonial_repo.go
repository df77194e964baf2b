package repository

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/swych-ai/swych_api/internal/models"
)

// TestimonialFilter narrows and pages a testimonial listing. Rating 0 means
// no rating filter; search and rating combine with AND.
type TestimonialFilter struct {
	Search string
	Rating int
	Limit  int
	Offset int
}

// TestimonialRepository provides data access methods for the testimonials table.
type TestimonialRepository struct {
	db *sqlx.DB
}

// NewTestimonialRepository creates a new TestimonialRepository.
func NewTestimonialRepository(db *sqlx.DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

const testimonialColumns = `id, client_name, company, position, testimonial, rating, avatar_url, created_at`

// GetByID finds a testimonial by numeric id. Returns sql.ErrNoRows when absent.
func (r *TestimonialRepository) GetByID(id int) (*models.Testimonial, error) {
	const q = `SELECT ` + testimonialColumns + ` FROM testimonials WHERE id = $1`
	var t models.Testimonial
	if err := r.db.Get(&t, q, id); err != nil {
		return nil, err
	}
	return &t, nil
}

// List retrieves testimonials matching the filter, newest first.
func (r *TestimonialRepository) List(f TestimonialFilter) ([]*models.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials`

	var conds []string
	var args []any
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		p := fmt.Sprintf("$%d", len(args))
		conds = append(conds, fmt.Sprintf("(client_name ILIKE %s OR company ILIKE %s OR testimonial ILIKE %s)", p, p, p))
	}
	if f.Rating != 0 {
		args = append(args, f.Rating)
		conds = append(conds, fmt.Sprintf("rating = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	testimonials := []*models.Testimonial{}
	if err := r.db.Select(&testimonials, query, args...); err != nil {
		return nil, err
	}
	return testimonials, nil
}

// Create inserts a new testimonial. The store assigns id and created_at,
// which are written back onto the model.
func (r *TestimonialRepository) Create(t *models.Testimonial) error {
	const q = `INSERT INTO testimonials (client_name, company, position, testimonial, rating, avatar_url)
	           VALUES ($1, $2, $3, $4, $5, $6)
	           RETURNING id, created_at`

	return r.db.QueryRowx(q,
		t.ClientName,
		t.Company,
		t.Position,
		t.Testimonial,
		t.Rating,
		t.AvatarURL,
	).Scan(&t.ID, &t.CreatedAt)
}

// Update writes all mutable columns of an existing testimonial.
func (r *TestimonialRepository) Update(t *models.Testimonial) error {
	const q = `UPDATE testimonials
	           SET client_name = $1, company = $2, position = $3, testimonial = $4, rating = $5, avatar_url = $6
	           WHERE id = $7`

	_, err := r.db.Exec(q, t.ClientName, t.Company, t.Position, t.Testimonial, t.Rating, t.AvatarURL, t.ID)
	return err
}

// Delete removes a testimonial by id and returns the deleted row.
// Returns sql.ErrNoRows when the id does not exist.
func (r *TestimonialRepository) Delete(id int) (*models.Testimonial, error) {
	const q = `DELETE FROM testimonials WHERE id = $1 RETURNING ` + testimonialColumns
	var t models.Testimonial
	if err := r.db.QueryRowx(q, id).StructScan(&t); err != nil {
		return nil, err
	}
	return &t, nil
}
