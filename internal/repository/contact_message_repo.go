package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/swych-ai/swych_api/internal/models"
)

// ContactMessageRepository stores audit copies of contact-form submissions.
type ContactMessageRepository struct {
	db *sqlx.DB
}

// NewContactMessageRepository creates a new ContactMessageRepository.
func NewContactMessageRepository(db *sqlx.DB) *ContactMessageRepository {
	return &ContactMessageRepository{db: db}
}

// Create inserts a contact message and writes back id and created_at.
func (r *ContactMessageRepository) Create(m *models.ContactMessage) error {
	const q = `INSERT INTO contact_messages (name, email, company, phone, message, email_id)
	           VALUES ($1, $2, $3, $4, $5, $6)
	           RETURNING id, created_at`

	return r.db.QueryRowx(q,
		m.Name,
		m.Email,
		m.Company,
		m.Phone,
		m.Message,
		m.EmailID,
	).Scan(&m.ID, &m.CreatedAt)
}
