package todopager

const (
	// MaxItemsPerPage caps a single page.
	MaxItemsPerPage = 100
	// DefaultItemsPerPage is the wide (desktop) layout page size.
	DefaultItemsPerPage = 10
	// CompactItemsPerPage is the narrow (mobile) layout page size.
	CompactItemsPerPage = 25

	// DefaultSiblingCount is the wide layout sibling count.
	DefaultSiblingCount = 1
	// CompactSiblingCount is the narrow layout sibling count.
	CompactSiblingCount = 0
)

func IsNormalizedItemsPerPageMax(itemsPerPage int, maxItemsPerPage int) (int, bool) {
	if itemsPerPage <= 0 {
		return DefaultItemsPerPage, false
	} else if itemsPerPage > maxItemsPerPage {
		return maxItemsPerPage, false
	}

	return itemsPerPage, true
}

func NormalizeItemsPerPageMax(itemsPerPage int, maxItemsPerPage int) int {
	ret, _ := IsNormalizedItemsPerPageMax(itemsPerPage, maxItemsPerPage)
	return ret
}

// NormalizeItemsPerPage clamps itemsPerPage into 1..MaxItemsPerPage,
// substituting DefaultItemsPerPage for non-positive values.
func NormalizeItemsPerPage(itemsPerPage int) int {
	return NormalizeItemsPerPageMax(itemsPerPage, MaxItemsPerPage)
}

// LayoutLimits returns the page size and sibling count for a layout.
func LayoutLimits(compact bool) (itemsPerPage, siblingCount int) {
	if compact {
		return CompactItemsPerPage, CompactSiblingCount
	}

	return DefaultItemsPerPage, DefaultSiblingCount
}
