package navigator

import "github.com/maxviazov/recipe-catalog-service/internal/pagination"

// PageLinkTarget is one navigable page control.
type PageLinkTarget struct {
	PageNumber   int    `json:"pageNumber"`
	IsActive     bool   `json:"isActive"`
	Href         string `json:"href"`
	AbsoluteHref string `json:"absoluteHref"`
}

// AdSlotConfig places one non-item entry at InsertAtIndex within the
// rendered page. It never touches the underlying items.
type AdSlotConfig struct {
	InsertAtIndex int `json:"insertAtIndex"`
}

// EntryKind tells items and injected entries apart.
type EntryKind string

const (
	EntryItem EntryKind = "item"
	EntryAd   EntryKind = "ad"
)

// Entry is one rendered slot. SourceIndex is the index into Page.Items, or
// -1 for an ad.
type Entry[T any] struct {
	Kind        EntryKind `json:"kind"`
	Position    int       `json:"position"`
	SourceIndex int       `json:"sourceIndex"`
	Item        T         `json:"item"`
}

// IsAd is a template helper.
func (e Entry[T]) IsAd() bool { return e.Kind == EntryAd }

// RenderPlan is everything a view needs to draw one page.
type RenderPlan[T any] struct {
	Entries        []Entry[T]       `json:"entries"`
	Links          []PageLinkTarget `json:"links"`
	Previous       *PageLinkTarget  `json:"previous,omitempty"`
	Next           *PageLinkTarget  `json:"next,omitempty"`
	Canonical      string           `json:"canonical"`
	CurrentPage    int              `json:"currentPage"`
	PageCount      int              `json:"pageCount"`
	TotalRowCount  int              `json:"totalRowCount"`
	FirstRowOnPage int              `json:"firstRowOnPage"`
	LastRowOnPage  int              `json:"lastRowOnPage"`
	Empty          bool             `json:"empty"`
	OutOfRange     bool             `json:"outOfRange"`
}

// Options are the per-surface inputs that are not part of the page.
type Options struct {
	Ad    *AdSlotConfig
	Links LinkBuilder
}

// Build computes the render plan for p as reached through loc. The current
// page comes from the URL, not from p, so that what the address bar says
// is what gets highlighted.
func Build[T any](p pagination.Page[T], loc Location, opts Options) RenderPlan[T] {
	current := CurrentPage(loc.RawQuery)
	plan := RenderPlan[T]{
		Entries:        Interleave(p.Items, opts.Ad),
		Links:          make([]PageLinkTarget, 0, p.PageCount),
		Canonical:      opts.Links.Absolute(loc, current),
		CurrentPage:    current,
		PageCount:      p.PageCount,
		TotalRowCount:  p.TotalRowCount,
		FirstRowOnPage: p.FirstRowOnPage,
		LastRowOnPage:  p.LastRowOnPage,
		Empty:          len(p.Items) == 0,
		OutOfRange:     current > p.PageCount,
	}
	for n := 1; n <= p.PageCount; n++ {
		plan.Links = append(plan.Links, opts.Links.Target(loc, n, current))
	}
	if current > 1 {
		// past the end, "previous" means the last real page
		prev := min(current-1, max(p.PageCount, 1))
		t := opts.Links.Target(loc, prev, current)
		plan.Previous = &t
	}
	if current < p.PageCount {
		t := opts.Links.Target(loc, current+1, current)
		plan.Next = &t
	}
	return plan
}

// AdActive reports whether ad applies to a page holding itemCount items.
func AdActive(ad *AdSlotConfig, itemCount int) bool {
	return ad != nil && ad.InsertAtIndex >= 0 && ad.InsertAtIndex <= itemCount
}

// Interleave returns items in order with at most one ad entry spliced in.
func Interleave[T any](items []T, ad *AdSlotConfig) []Entry[T] {
	withAd := AdActive(ad, len(items))
	n := len(items)
	if withAd {
		n++
	}
	out := make([]Entry[T], 0, n)
	for i, it := range items {
		if withAd && i == ad.InsertAtIndex {
			out = append(out, Entry[T]{Kind: EntryAd, Position: len(out), SourceIndex: -1})
		}
		out = append(out, Entry[T]{Kind: EntryItem, Position: len(out), SourceIndex: i, Item: it})
	}
	if withAd && ad.InsertAtIndex == len(items) {
		out = append(out, Entry[T]{Kind: EntryAd, Position: len(out), SourceIndex: -1})
	}
	return out
}

// SourceIndexAt maps a rendered position back to an index into the page's
// items. ok is false for the ad slot and for positions outside the plan.
func SourceIndexAt(position, itemCount int, ad *AdSlotConfig) (int, bool) {
	rendered := itemCount
	active := AdActive(ad, itemCount)
	if active {
		rendered++
	}
	if position < 0 || position >= rendered {
		return -1, false
	}
	if !active || position < ad.InsertAtIndex {
		return position, true
	}
	if position == ad.InsertAtIndex {
		return -1, false
	}
	return position - 1, true
}
