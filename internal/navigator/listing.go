package navigator

import "github.com/maxviazov/recipe-catalog-service/internal/pagination"

// Navigation is the wire form of a plan's page controls.
type Navigation struct {
	Links     []PageLinkTarget `json:"links"`
	Previous  *PageLinkTarget  `json:"previous"`
	Next      *PageLinkTarget  `json:"next"`
	Canonical string           `json:"canonical"`
	// AdSlot is the rendered position of the ad entry, if the page has one.
	AdSlot *int `json:"adSlot,omitempty"`
}

// Listing is a page together with the controls for reaching its neighbours.
type Listing[T any] struct {
	Page       pagination.Page[T] `json:"page"`
	Navigation Navigation         `json:"navigation"`
}

// NewListing builds the plan for p at loc and keeps only its navigation.
func NewListing[T any](p pagination.Page[T], loc Location, opts Options) Listing[T] {
	plan := Build(p, loc, opts)
	nav := Navigation{
		Links:     plan.Links,
		Previous:  plan.Previous,
		Next:      plan.Next,
		Canonical: plan.Canonical,
	}
	if AdActive(opts.Ad, len(p.Items)) {
		slot := opts.Ad.InsertAtIndex
		nav.AdSlot = &slot
	}
	return Listing[T]{Page: p, Navigation: nav}
}
