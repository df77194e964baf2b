package models

import "time"

// ContactMessage is the stored copy of a contact-form submission. EmailID is
// the provider's message id when dispatch succeeded.
type ContactMessage struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Company   *string   `db:"company" json:"company"`
	Phone     *string   `db:"phone" json:"phone"`
	Message   string    `db:"message" json:"message"`
	EmailID   *string   `db:"email_id" json:"emailId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
