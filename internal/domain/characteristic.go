package domain

// Characteristic is a reviewer self-reported trait (e.g. body type) with a
// fixed table of selectable values. Values maps a value key to its human
// label ("extra-large" -> "Extra Large") and is persisted as JSONB.
type Characteristic struct {
	ID          int64             `json:"charstcs_id"`
	Slug        string            `json:"charstcs_slug"`
	Name        string            `json:"charstcs_name"`
	Description string            `json:"charstcs_desc"`
	Values      map[string]string `json:"charstcs_values"`
}

// Label resolves a stored value key to its human label. Unknown keys fall
// back to the key itself so stale assignments still render.
func (c *Characteristic) Label(valueKey string) string {
	if label, ok := c.Values[valueKey]; ok {
		return label
	}
	return valueKey
}
