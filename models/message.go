package models

// Message is one entry in the correspondence thread between the author and
// the assigned reviewer. Ordering is insertion order; there is no edit or
// delete.
type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
	Read   bool   `json:"is_read"`
}
