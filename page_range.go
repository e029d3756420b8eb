package todopager

import (
	"strconv"

	"github.com/samber/lo"
)

// fixedMarkerSlots is the number of always-visible non-sibling slots: first
// page, last page, current page and two ellipsis placeholders.
const fixedMarkerSlots = 5

// Marker is one element of a rendered pagination control: either a page
// number (>= 1) or an ellipsis placeholder.
type Marker int

// Ellipsis is the placeholder marker for a run of hidden pages.
const Ellipsis Marker = 0

// IsEllipsis reports whether the marker is a placeholder rather than a page.
func (m Marker) IsEllipsis() bool {
	return m == Ellipsis
}

// Page returns the page number carried by the marker, or 0 for an ellipsis.
func (m Marker) Page() int {
	return int(m)
}

// String - implements fmt.Stringer.
func (m Marker) String() string {
	if m.IsEllipsis() {
		return "..."
	}

	return strconv.Itoa(int(m))
}

// PageRange is the output of ComputeRange.
type PageRange struct {
	// TotalPages is ceil(totalItems / itemsPerPage).
	TotalPages int
	// Markers is the ordered sequence to render.
	Markers []Marker
}

// HasEllipsis reports whether any page run was collapsed.
func (r PageRange) HasEllipsis() bool {
	return lo.ContainsBy(r.Markers, Marker.IsEllipsis)
}

// TotalPages returns ceil(totalItems / itemsPerPage), or 0 for non-positive
// inputs.
func TotalPages(totalItems, itemsPerPage int) int {
	if totalItems <= 0 || itemsPerPage <= 0 {
		return 0
	}

	return (totalItems + itemsPerPage - 1) / itemsPerPage
}

// ComputeRange decides which page markers to display for the current page.
//
// The budget is siblingCount+5 markers. When every page fits, the full range
// is returned. Otherwise the first and last pages are always shown and the
// side(s) away from the current page collapse into an ellipsis. A window
// anchored to either end always spans 3+2*siblingCount pages.
//
// The function is pure and never fails: malformed input yields an empty
// range, and a currentPage beyond the last page only clamps the sibling
// window.
func ComputeRange(totalItems, itemsPerPage, currentPage, siblingCount int) PageRange {
	if itemsPerPage <= 0 || siblingCount < 0 {
		return PageRange{}
	}

	totalPages := TotalPages(totalItems, itemsPerPage)
	ret := PageRange{TotalPages: totalPages}

	if siblingCount+fixedMarkerSlots >= totalPages {
		ret.Markers = pageSpan(1, totalPages)
		return ret
	}

	leftSibling := max(currentPage-siblingCount, 1)
	rightSibling := min(currentPage+siblingCount, totalPages)

	showLeftEllipsis := leftSibling > 2
	showRightEllipsis := rightSibling < totalPages-2

	anchoredWindow := 3 + 2*siblingCount

	switch {
	case !showLeftEllipsis && showRightEllipsis:
		// Large sibling counts can push the window past the last page; it
		// never reaches the trailing marker.
		ret.Markers = append(pageSpan(1, min(anchoredWindow, totalPages-1)), Ellipsis, Marker(totalPages))

	case showLeftEllipsis && !showRightEllipsis:
		ret.Markers = append([]Marker{1, Ellipsis}, pageSpan(max(totalPages-anchoredWindow+1, 2), totalPages)...)

	case showLeftEllipsis && showRightEllipsis:
		ret.Markers = make([]Marker, 0, rightSibling-leftSibling+5)
		ret.Markers = append(ret.Markers, 1, Ellipsis)
		ret.Markers = append(ret.Markers, pageSpan(leftSibling, rightSibling)...)
		ret.Markers = append(ret.Markers, Ellipsis, Marker(totalPages))

	default:
		// The sibling window touches both ends, so nothing needs collapsing.
		ret.Markers = pageSpan(1, totalPages)
	}

	return ret
}

// pageSpan returns the inclusive run [from..to] as page markers.
func pageSpan(from, to int) []Marker {
	if to < from {
		return []Marker{}
	}

	return lo.Map(lo.RangeFrom(from, to-from+1), func(p int, _ int) Marker {
		return Marker(p)
	})
}
