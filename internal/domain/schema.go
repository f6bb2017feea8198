package domain

// Table identifies one logical table of the review store.
type Table struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// tables is the fixed, ordered registry of logical tables. Admin tooling
// validates table-selection parameters against it; the read path itself only
// uses it for defensive checks.
var tables = []Table{
	{Key: "content", Label: "Review Content"},
	{Key: "authormeta", Label: "Author Meta"},
	{Key: "ratings", Label: "Ratings"},
	{Key: "attributes", Label: "Attributes"},
	{Key: "charstcs", Label: "Characteristics"},
	{Key: "authorsetup", Label: "Author Setup"},
	{Key: "productsetup", Label: "Product Setup"},
}

// Tables returns the registry in its canonical order.
func Tables() []Table {
	out := make([]Table, len(tables))
	copy(out, tables)
	return out
}

// ValidTable reports whether key names a registered logical table.
func ValidTable(key string) bool {
	for _, t := range tables {
		if t.Key == key {
			return true
		}
	}
	return false
}
