package models

import (
	"time"
)

// Paper is one submitted manuscript. The tracking code doubles as the
// record id and is stable for the paper's lifetime; the author needs it
// together with the submission email to look the paper up.
type Paper struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string `json:"title"`
	Authors     string `json:"authors"`
	Email       string `json:"email"`
	Institution string `json:"institution"`

	Status    Status   `json:"status"`
	Reviewer  string   `json:"reviewer,omitempty"`
	Interests []string `json:"interests,omitempty"`

	AuthorsAnonymous     bool `json:"is_authors_anonymous"`
	EmailAnonymous       bool `json:"is_mail_anonymous"`
	InstitutionAnonymous bool `json:"is_institution_anonymous"`
}

// DisplayAuthors returns the author list as it should be rendered,
// masked when the authors anonymity flag is on.
func (p *Paper) DisplayAuthors() string {
	if p.AuthorsAnonymous {
		return Mask(p.Authors)
	}
	return p.Authors
}

// DisplayEmail returns the submission email, masked when anonymized.
func (p *Paper) DisplayEmail() string {
	if p.EmailAnonymous {
		return Mask(p.Email)
	}
	return p.Email
}

// DisplayInstitution returns the institution, masked when anonymized.
func (p *Paper) DisplayInstitution() string {
	if p.InstitutionAnonymous {
		return Mask(p.Institution)
	}
	return p.Institution
}

// Mask redacts a value for display: the first rune followed by a fixed
// three-character mask. The underlying value is never altered, so toggling
// a flag off restores the original text exactly.
func Mask(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	return string(runes[0]) + "***"
}
