// Package export walks every page of a resource through a source.Loader.
//
// Pages are fetched in fixed-size batches: the pages of one batch load
// concurrently and their rows are emitted in page order before the next
// batch starts, so memory stays bounded by one batch of pages regardless
// of the collection size. Progress is reported after every page.
package export
