package domain

// RatingLabels holds the endpoint labels shown on an attribute's rating
// scale. Persisted as a JSONB column.
type RatingLabels struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// Attribute is a rateable product dimension (e.g. "durability"). Reference
// data: created and edited in admin screens, read-heavy here.
type Attribute struct {
	ID          int64        `json:"attribute_id"`
	Slug        string       `json:"attribute_slug"`
	Name        string       `json:"attribute_name"`
	Description string       `json:"attribute_desc"`
	Labels      RatingLabels `json:"rating_labels"`
}
