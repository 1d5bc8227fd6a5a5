// Package source loads pages of rows from the remote collections the table
// browses.
//
// A Loader answers one Query (resource, pagination, applied filters) with a
// Result holding the rows of the page and the total page count. Two HTTP
// backends are provided:
//
//   - JSONPlaceholder filters and pages on the server with json-server query
//     parameters, and derives the page count from a second, unpaginated
//     request issued concurrently with the page request.
//   - ReqRes pages on the server and reports total_pages itself; it has no
//     filtering, so filters are applied to the returned page.
//
// CachedLoader wraps any Loader with an in-memory cache and the on-disk
// cache.FileStore. Mux routes a Query to the backend that serves its
// resource, as described by the Catalog.
package source
