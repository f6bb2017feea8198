package domain

import (
	"time"
)

// ReviewStatus is the moderation state of a review.
type ReviewStatus string

// Review moderation states. Reviews are soft-filtered by status; rows are
// never physically removed by the read path.
const (
	StatusApproved ReviewStatus = "approved"
	StatusPending  ReviewStatus = "pending"
	StatusRejected ReviewStatus = "rejected"
	StatusHidden   ReviewStatus = "hidden"
)

// ScoreMap maps an attribute id to the sub-score a review gave it.
// It is persisted as a JSONB column on the review row.
type ScoreMap map[int64]int

// TraitMap maps a characteristic id to the value key the review's author
// selected (e.g. 3 -> "extra-large"). Persisted as JSONB alongside the review.
type TraitMap map[int64]string

// Review is a customer-submitted product evaluation.
type Review struct {
	ID              int64        `json:"review_id"`
	ProductID       int64        `json:"product_id"`
	AuthorID        int64        `json:"author_id"`
	Date            time.Time    `json:"review_date"`
	Slug            string       `json:"review_slug"`
	Title           string       `json:"review_title"`
	Summary         string       `json:"review_summary"`
	Content         string       `json:"review_content"`
	Status          ReviewStatus `json:"review_status"`
	Verified        bool         `json:"is_verified"`
	TotalScore      int          `json:"rating_total_score"`
	AttributeScores ScoreMap     `json:"rating_attributes"`
	AuthorTraits    TraitMap     `json:"author_charstcs"`
}

// RatingEntry is one per-attribute score row belonging to a review.
type RatingEntry struct {
	ReviewID    int64 `json:"review_id"`
	AttributeID int64 `json:"attribute_id"`
	Score       int   `json:"rating_score"`
}

// TraitAssignment links an author's profile answer to a characteristic for a
// given product review. Sorting queries match against these rows.
type TraitAssignment struct {
	AuthorID         int64  `json:"author_id"`
	ProductID        int64  `json:"product_id"`
	ReviewID         int64  `json:"review_id"`
	CharacteristicID int64  `json:"charstcs_id"`
	Value            string `json:"charstcs_value"`
}

// ReviewContent groups the flat text fields of a review for display.
type ReviewContent struct {
	Date    time.Time    `json:"date"`
	Slug    string       `json:"slug"`
	Title   string       `json:"title"`
	Summary string       `json:"summary"`
	Content string       `json:"content"`
	Status  ReviewStatus `json:"status"`
}

// ScoredAttribute is a resolved (attribute, sub-score) pair on a display review.
type ScoredAttribute struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

// AuthorTrait is a resolved (characteristic, human label) pair on a display
// review. Value carries the resolved label, not the stored value key.
type AuthorTrait struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// DisplayReview is the nested, display-ready shape of a review: content
// fields grouped, attribute scores and author characteristics resolved to
// labeled triples.
type DisplayReview struct {
	ID                    int64             `json:"review_id"`
	ProductID             int64             `json:"product_id"`
	AuthorID              int64             `json:"author_id"`
	Verified              bool              `json:"is_verified"`
	Content               ReviewContent     `json:"content"`
	TotalScore            int               `json:"total_score"`
	RatingAttributes      []ScoredAttribute `json:"rating_attributes"`
	AuthorCharacteristics []AuthorTrait     `json:"author_charstcs"`
}
