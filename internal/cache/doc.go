// Package cache persists fetched pages on disk so repeated queries for the
// same resource, page and filters do not hit the remote API.
//
// Entries are JSON files named by a SHA-256 key derived from the query
// (see GenerateKey). Each entry carries its own expiry; expired entries are
// reported as ErrCacheExpired and removed by CleanupExpired.
package cache
