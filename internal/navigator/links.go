// Package navigator turns a pagination.Page into a render plan: the items
// interleaved with any in-feed ad slot, and a set of page links that are
// real, crawlable URLs.
//
// A render plan is a pure function of (page, location, options). A deep
// link and a click that lands on the same URL produce the same plan.
package navigator

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/maxviazov/recipe-catalog-service/internal/pagination"
)

// Location is the part of a URL the navigator reads and writes.
type Location struct {
	Path     string
	RawQuery string
}

// LocationOf extracts a Location from a request URL.
func LocationOf(u *url.URL) Location {
	if u == nil {
		return Location{}
	}
	return Location{Path: u.Path, RawQuery: u.RawQuery}
}

// CurrentPage reads the page query parameter. Absent, unparsable and
// non-positive values all mean page 1.
func CurrentPage(rawQuery string) int {
	values, _ := url.ParseQuery(rawQuery)
	n, err := strconv.Atoi(strings.TrimSpace(values.Get(pagination.QueryKeyPage)))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Href builds the link for page on top of an existing query string. Every
// prior page pair is dropped; every other pair is kept verbatim and in
// order. Page 1 is canonical without a page key.
func Href(path, rawQuery string, page int) string {
	q := pageQuery(rawQuery, page)
	switch {
	case q != "":
		return path + "?" + q
	case path == "":
		return "?"
	default:
		return path
	}
}

// pageQuery rewrites rawQuery for page, keeping non-page pairs in order.
func pageQuery(rawQuery string, page int) string {
	var pairs []string
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" || isPageKey(pair) {
			continue
		}
		pairs = append(pairs, pair)
	}
	if page > 1 {
		pairs = append(pairs, pagination.QueryKeyPage+"="+strconv.Itoa(page))
	}
	return strings.Join(pairs, "&")
}

func isPageKey(pair string) bool {
	key, _, _ := strings.Cut(pair, "=")
	if k, err := url.QueryUnescape(key); err == nil {
		key = k
	}
	return key == pagination.QueryKeyPage
}

// LinkBuilder resolves page links against the public origin so markup can
// carry absolute anchors. A zero LinkBuilder yields relative links.
type LinkBuilder struct {
	Base *url.URL
}

// NewLinkBuilder parses the public base URL. An empty string is valid and
// means relative links only.
func NewLinkBuilder(publicURL string) (LinkBuilder, error) {
	if strings.TrimSpace(publicURL) == "" {
		return LinkBuilder{}, nil
	}
	u, err := url.Parse(publicURL)
	if err != nil {
		return LinkBuilder{}, err
	}
	return LinkBuilder{Base: u}, nil
}

// Absolute returns the crawlable URL for page. loc.Path is appended to
// the base path, so a public URL such as https://host/app keeps its prefix.
func (b LinkBuilder) Absolute(loc Location, page int) string {
	if b.Base == nil || b.Base.Host == "" {
		return Href(loc.Path, loc.RawQuery, page)
	}
	u := url.URL{
		Scheme: b.Base.Scheme,
		User:   b.Base.User,
		Host:   b.Base.Host,
		Path:   joinPath(b.Base.Path, loc.Path),
	}
	u.RawQuery = pageQuery(loc.RawQuery, page)
	return u.String()
}

func joinPath(base, path string) string {
	if path == "" {
		if base == "" {
			return "/"
		}
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// Target builds the link target for page as seen from loc.
func (b LinkBuilder) Target(loc Location, page, current int) PageLinkTarget {
	return PageLinkTarget{
		PageNumber:   page,
		IsActive:     page == current,
		Href:         Href(loc.Path, loc.RawQuery, page),
		AbsoluteHref: b.Absolute(loc, page),
	}
}
