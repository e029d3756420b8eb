// Package todopager provides page-number pagination for task lists.
//
// Overview
//
// todopager has two cooperating parts:
//   - ComputeRange: a pure function deciding which page numbers and ellipses
//     a pagination control shows for the current page.
//   - View: a controller holding the current page and item offset over a
//     client-held list. It either slices the list locally (LocalSlicing) or
//     delegates each page change to a fetch (RemoteFetch), and resets to the
//     first page whenever a new list is handed to it.
//
// Key concepts
//   - Marker: a page number or the Ellipsis placeholder.
//   - Directive: the visible items plus markers a host renders.
//   - PageQuery: applies the same page addressing to GORM queries; GormFetch
//     turns a query into a RemoteFetch.
//   - Orderings / Getters: multi-column ordering, in SQL or in memory.
package todopager
