package service

import (
	"sort"

	"github.com/utafrali/reviews-service/internal/domain"
	apperrors "github.com/utafrali/reviews-service/pkg/errors"
)

// Projection selects the output shape of a list query.
type Projection string

const (
	ProjectionCounts  Projection = "counts"
	ProjectionObjects Projection = "objects"
	ProjectionDisplay Projection = "display"

	// Named field projections. Which of these a given operation supports is
	// defined by its entity's field manifest.
	ProjectionIDs          Projection = "ids"
	ProjectionSlugs        Projection = "slugs"
	ProjectionTitles       Projection = "titles"
	ProjectionSummaries    Projection = "summaries"
	ProjectionAuthors      Projection = "authors"
	ProjectionProducts     Projection = "products"
	ProjectionTotal        Projection = "total"
	ProjectionNames        Projection = "names"
	ProjectionDescriptions Projection = "descriptions"
	ProjectionLabels       Projection = "labels"
	ProjectionValues       Projection = "values"
)

// ParseProjection maps a caller-supplied selector onto the closed Projection
// set. An empty selector means objects; anything unrecognized is an
// invalid-input error rather than a silent empty result.
func ParseProjection(s string) (Projection, error) {
	if s == "" {
		return ProjectionObjects, nil
	}

	switch p := Projection(s); p {
	case ProjectionCounts, ProjectionObjects, ProjectionDisplay,
		ProjectionIDs, ProjectionSlugs, ProjectionTitles, ProjectionSummaries,
		ProjectionAuthors, ProjectionProducts, ProjectionTotal,
		ProjectionNames, ProjectionDescriptions, ProjectionLabels, ProjectionValues:
		return p, nil
	default:
		return "", apperrors.InvalidInput("unknown return type: " + s)
	}
}

// Order selects the sequencing of field-projection output.
type Order string

const (
	// OrderNewest keeps the query's own ordering (newest first for reviews,
	// name order for catalogs).
	OrderNewest Order = "newest"

	// OrderByID re-sorts field pairs by entity id ascending.
	OrderByID Order = "id"
)

// ParseOrder maps a caller-supplied order token. Empty means OrderNewest.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", string(OrderNewest):
		return OrderNewest, nil
	case string(OrderByID):
		return OrderByID, nil
	default:
		return "", apperrors.InvalidInput("unknown order: " + s)
	}
}

// FieldPair maps an entity id to one projected field value.
type FieldPair struct {
	ID    int64 `json:"id"`
	Value any   `json:"value"`
}

// Result is the outcome of a list query in its requested shape. Exactly one
// of the payload fields is populated, selected by Projection.
type Result struct {
	Projection Projection  `json:"projection"`
	Count      int         `json:"count,omitempty"`
	IDs        []int64     `json:"ids,omitempty"`
	Fields     []FieldPair `json:"fields,omitempty"`
	Objects    any         `json:"objects,omitempty"`
	Display    any         `json:"display,omitempty"`
}

// Payload returns the populated shape for serialization.
func (r *Result) Payload() any {
	switch r.Projection {
	case ProjectionCounts:
		return r.Count
	case ProjectionIDs:
		return r.IDs
	case ProjectionObjects:
		return r.Objects
	case ProjectionDisplay:
		return r.Display
	default:
		return r.Fields
	}
}

// fieldManifest declares, per entity type, which named field projections an
// operation supports and how each field is read off a row. One generic
// projector consumes these instead of every operation branching on its own.
type fieldManifest[T any] map[Projection]func(T) any

var reviewManifest = fieldManifest[domain.Review]{
	ProjectionSlugs:     func(r domain.Review) any { return r.Slug },
	ProjectionTitles:    func(r domain.Review) any { return r.Title },
	ProjectionSummaries: func(r domain.Review) any { return r.Summary },
	ProjectionAuthors:   func(r domain.Review) any { return r.AuthorID },
	ProjectionProducts:  func(r domain.Review) any { return r.ProductID },
	ProjectionTotal:     func(r domain.Review) any { return r.TotalScore },
}

var attributeManifest = fieldManifest[domain.Attribute]{
	ProjectionSlugs:        func(a domain.Attribute) any { return a.Slug },
	ProjectionNames:        func(a domain.Attribute) any { return a.Name },
	ProjectionDescriptions: func(a domain.Attribute) any { return a.Description },
	ProjectionLabels:       func(a domain.Attribute) any { return a.Labels },
}

var characteristicManifest = fieldManifest[domain.Characteristic]{
	ProjectionSlugs:        func(c domain.Characteristic) any { return c.Slug },
	ProjectionNames:        func(c domain.Characteristic) any { return c.Name },
	ProjectionDescriptions: func(c domain.Characteristic) any { return c.Description },
	ProjectionValues:       func(c domain.Characteristic) any { return c.Values },
}

// project reshapes a row set per the requested projection. display builds the
// display shape lazily so operations that never ask for it pay nothing.
func project[T any](
	items []T,
	manifest fieldManifest[T],
	id func(T) int64,
	p Projection,
	order Order,
	display func() (any, error),
) (*Result, error) {
	res := &Result{Projection: p}

	switch p {
	case ProjectionCounts:
		res.Count = len(items)
		return res, nil

	case ProjectionObjects:
		res.Objects = items
		return res, nil

	case ProjectionDisplay:
		shaped, err := display()
		if err != nil {
			return nil, err
		}
		res.Display = shaped
		return res, nil

	case ProjectionIDs:
		ids := make([]int64, len(items))
		for i, item := range items {
			ids[i] = id(item)
		}
		if order == OrderByID {
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		}
		res.IDs = ids
		return res, nil
	}

	accessor, ok := manifest[p]
	if !ok {
		return nil, apperrors.InvalidInput("return type " + string(p) + " is not supported by this operation")
	}

	pairs := make([]FieldPair, len(items))
	for i, item := range items {
		pairs[i] = FieldPair{ID: id(item), Value: accessor(item)}
	}
	if order == OrderByID {
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].ID < pairs[j].ID })
	}
	res.Fields = pairs
	return res, nil
}
