package navigator_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/recipe-catalog-service/internal/navigator"
	"github.com/maxviazov/recipe-catalog-service/internal/pagination"
)

func TestNewListing(t *testing.T) {
	p := pagination.Paginate(letters(25), 2, 10)
	loc := navigator.Location{Path: "/api/v1/recipes", RawQuery: "q=soup&page=2"}

	l := navigator.NewListing(p, loc, navigator.Options{Ad: &navigator.AdSlotConfig{InsertAtIndex: 2}})

	require.Len(t, l.Navigation.Links, 3)
	require.NotNil(t, l.Navigation.Previous)
	require.NotNil(t, l.Navigation.Next)
	assert.Equal(t, "/api/v1/recipes?q=soup", l.Navigation.Previous.Href)
	assert.Equal(t, "/api/v1/recipes?q=soup&page=3", l.Navigation.Next.Href)
	assert.Equal(t, "/api/v1/recipes?q=soup&page=2", l.Navigation.Canonical)
	require.NotNil(t, l.Navigation.AdSlot)
	assert.Equal(t, 2, *l.Navigation.AdSlot)
	assert.Len(t, l.Page.Items, 10)
}

func TestNewListing_NoAdOnShortPage(t *testing.T) {
	p := pagination.Paginate(letters(1), 1, 10)
	l := navigator.NewListing(p, navigator.Location{Path: "/x"}, navigator.Options{Ad: &navigator.AdSlotConfig{InsertAtIndex: 2}})
	assert.Nil(t, l.Navigation.AdSlot)

	raw, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"page": {"items":["a"],"currentPage":1,"pageSize":10,"totalRowCount":1,"pageCount":1,
		         "firstRowOnPage":1,"lastRowOnPage":1,"hasPrevious":false,"hasNext":false},
		"navigation": {"links":[{"pageNumber":1,"isActive":true,"href":"/x","absoluteHref":"/x"}],
		               "previous":null,"next":null,"canonical":"/x"}
	}`, string(raw))
}
