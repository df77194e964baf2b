package models

import "time"

// Client represents a company featured in the marketing site's client logo
// carousel. Optional fields are pointers so absent values serialize as null,
// matching what the front-end expects.
type Client struct {
	ID          int       `db:"id" json:"id"`
	CompanyName string    `db:"company_name" json:"companyName"`
	LogoURL     *string   `db:"logo_url" json:"logoUrl"`
	Description *string   `db:"description" json:"description"`
	WebsiteURL  *string   `db:"website_url" json:"websiteUrl"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
