// Package pagination converts between the 1-based page numbers used on the
// command line and the 0-based table.PaginationState used by the table
// controller and the data loaders, and describes a fetched page for
// machine-readable output.
package pagination
