package repository

// Product metadata keys. The legacy pair keeps WooCommerce-compatible
// storefronts reading the same counters; the rev_ pair is owned by this
// service.
const (
	MetaLegacyReviewCount   = "_wc_review_count"
	MetaLegacyAverageRating = "_wc_average_rating"
	MetaReviewCount         = "rev_review_count"
	MetaAverageRating       = "rev_average_rating"
	MetaProductAttributes   = "rev_product_attributes"
)
