package cache

import "fmt"

// All cache keys share one namespace prefix so the service's entries can be
// identified (and flushed) without touching other tenants of the store.
const keyPrefix = "rev:"

// Review row-set keys.
func KeyAllReviews() string    { return keyPrefix + "all_reviews" }
func KeyAdminReviews() string  { return keyPrefix + "admin_reviews" }
func KeyVerifiedReviews() string { return keyPrefix + "verified_reviews" }

func KeyReviewsForProduct(productID int64) string {
	return fmt.Sprintf("%sreviews_for_product_%d", keyPrefix, productID)
}

func KeyApprovedReviewsForProduct(productID int64) string {
	return fmt.Sprintf("%sapproved_reviews_for_product_%d", keyPrefix, productID)
}

func KeyReviewsForAuthor(authorID int64) string {
	return fmt.Sprintf("%sreviews_for_author_%d", keyPrefix, authorID)
}

func KeySingleReview(reviewID int64) string {
	return fmt.Sprintf("%ssingle_review_%d", keyPrefix, reviewID)
}

// Counter keys.
func KeyReviewCountForProduct(productID int64) string {
	return fmt.Sprintf("%sreview_count_product_%d", keyPrefix, productID)
}

func KeyLegacyReviewCounts() string { return keyPrefix + "legacy_review_counts" }

// Attribute and characteristic catalog keys.
func KeyAllAttributes() string { return keyPrefix + "all_attributes" }

func KeyAttributesForProduct(productID int64) string {
	return fmt.Sprintf("%sattributes_product_%d", keyPrefix, productID)
}

func KeySingleAttribute(attributeID int64) string {
	return fmt.Sprintf("%ssingle_attribute_%d", keyPrefix, attributeID)
}

func KeyAllCharacteristics() string { return keyPrefix + "all_charstcs" }

func KeyCharacteristicsForAuthor(authorID int64) string {
	return fmt.Sprintf("%scharstcs_author_%d", keyPrefix, authorID)
}

func KeySingleCharacteristic(characteristicID int64) string {
	return fmt.Sprintf("%ssingle_charstcs_%d", keyPrefix, characteristicID)
}
