// Package table implements the pagination and filter coordination core of a
// server-paginated table.
//
// The package owns the table's visible state and nothing else:
//   - State: pagination, draft and applied filters, column widths (immutable values)
//   - Store: the only way to replace the current State, one named operation per change
//   - Controller: the intent dispatcher (page navigation, page size, filter editing,
//     search commit, column resizing) and the reconciler for the externally supplied
//     total page count
//   - Resizer: pointer-drag column resize sub-state
//
// The Controller never performs I/O. Whenever an intent requires new data it invokes
// the OnPaginationChange callback with the new pagination and the applied filters; the
// caller loads the page and hands the result back through Controller.Receive.
//
// A Controller is not safe for concurrent use. It is meant to be driven from a single
// event loop such as a Bubble Tea Update method.
package table
