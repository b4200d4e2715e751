package models

// AnonField names one of the three independent anonymity flags, using the
// backend's wire field names. Each flag controls both the text rendering of
// its paper attribute and the redacted region of the PDF.
type AnonField string

const (
	FieldAuthors     AnonField = "is_authors_anonymous"
	FieldEmail       AnonField = "is_mail_anonymous"
	FieldInstitution AnonField = "is_institution_anonymous"
)

// ReleaseOrder is the fixed sequence the release-to-author flow unredacts
// fields in.
func ReleaseOrder() []AnonField {
	return []AnonField{FieldAuthors, FieldEmail, FieldInstitution}
}

// Flag returns the current value of the flag named by f.
func (p *Paper) Flag(f AnonField) bool {
	switch f {
	case FieldAuthors:
		return p.AuthorsAnonymous
	case FieldEmail:
		return p.EmailAnonymous
	case FieldInstitution:
		return p.InstitutionAnonymous
	}
	return false
}

// SetFlag sets the flag named by f.
func (p *Paper) SetFlag(f AnonField, v bool) {
	switch f {
	case FieldAuthors:
		p.AuthorsAnonymous = v
	case FieldEmail:
		p.EmailAnonymous = v
	case FieldInstitution:
		p.InstitutionAnonymous = v
	}
}
