package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/pagedtable/internal/logging"
	"github.com/rshade/pagedtable/internal/table"
)

// JSONPlaceholder resources.
var jsonPlaceholderResources = []string{"comments", "posts", "users"}

// JSONPlaceholder loads pages from a json-server style API such as
// https://jsonplaceholder.typicode.com.
type JSONPlaceholder struct {
	baseURL string
	http    *httpGetter
}

// NewJSONPlaceholder returns a loader for the comments, posts and users
// collections.
func NewJSONPlaceholder(opts HTTPOptions) *JSONPlaceholder {
	return &JSONPlaceholder{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    newHTTPGetter(opts, http.Header{}),
	}
}

// Load issues the count request (filtered, unpaginated) and the page request
// (filtered, with _start and _limit) concurrently.
func (j *JSONPlaceholder) Load(ctx context.Context, q Query) (Result, error) {
	if !slices.Contains(jsonPlaceholderResources, q.Resource) {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownResource, q.Resource)
	}

	page := q.Pagination
	page.PageSize = max(page.PageSize, 1)
	countURL, pageURL := j.urls(q.Resource, q.Filters, page.Offset(), page.PageSize)

	var (
		all  []json.RawMessage
		rows []table.Row
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return j.http.getJSON(gctx, countURL, &all)
	})
	g.Go(func() error {
		return j.http.getJSON(gctx, pageURL, &rows)
	})
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("loading %s: %w", q.Resource, err)
	}

	if rows == nil {
		rows = []table.Row{}
	}
	total := len(all)

	logging.FromContext(ctx).Debug().
		Str("resource", q.Resource).
		Int("rows", len(rows)).
		Int("total_count", total).
		Msg("jsonplaceholder page loaded")

	return Result{
		Rows:           rows,
		TotalCount:     total,
		TotalPageCount: table.PageCount(total, page.PageSize),
	}, nil
}

// urls builds the count and page URLs. Each non-empty filter becomes a
// <column>_like parameter.
func (j *JSONPlaceholder) urls(resource string, filters table.FilterState, start, limit int) (string, string) {
	params := url.Values{}
	for col, text := range filters {
		if text == "" {
			continue
		}
		params.Set(col+"_like", text)
	}

	endpoint := j.baseURL + "/" + resource
	countURL := endpoint
	if len(params) > 0 {
		countURL += "?" + params.Encode()
	}

	params.Set("_start", strconv.Itoa(start))
	params.Set("_limit", strconv.Itoa(limit))
	return countURL, endpoint + "?" + params.Encode()
}
