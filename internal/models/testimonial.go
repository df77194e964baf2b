package models

import "time"

// Testimonial represents a customer quote shown in the landing-page carousel.
// Rating is constrained to 1..5 at the service layer and by a CHECK constraint.
type Testimonial struct {
	ID          int       `db:"id" json:"id"`
	ClientName  string    `db:"client_name" json:"clientName"`
	Company     string    `db:"company" json:"company"`
	Position    string    `db:"position" json:"position"`
	Testimonial string    `db:"testimonial" json:"testimonial"`
	Rating      int       `db:"rating" json:"rating"`
	AvatarURL   *string   `db:"avatar_url" json:"avatarUrl"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
