package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/rshade/pagedtable/internal/logging"
	"github.com/rshade/pagedtable/internal/table"
)

const (
	reqresPeople = "people"

	// FullNameColumn is derived from first_name and last_name.
	FullNameColumn = "fullName"

	reqresAPIKeyHeader = "x-api-key"
)

type reqresPage struct {
	Page       int         `json:"page"`
	PerPage    int         `json:"per_page"`
	Total      int         `json:"total"`
	TotalPages int         `json:"total_pages"`
	Data       []table.Row `json:"data"`
}

// ReqRes loads the people resource from https://reqres.in/api/users.
type ReqRes struct {
	baseURL string
	http    *httpGetter
}

// NewReqRes returns a ReqRes loader. apiKey is sent as x-api-key when set.
func NewReqRes(opts HTTPOptions, apiKey string) *ReqRes {
	header := http.Header{}
	if apiKey != "" {
		header.Set(reqresAPIKeyHeader, apiKey)
	}
	return &ReqRes{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    newHTTPGetter(opts, header),
	}
}

// Load fetches one server page. ReqRes cannot filter, so filters are applied
// to the rows of the returned page and the page count is the server's
// total_pages regardless of filters.
func (r *ReqRes) Load(ctx context.Context, q Query) (Result, error) {
	if q.Resource != reqresPeople {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownResource, q.Resource)
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Pagination.PageIndex+1))
	params.Set("per_page", strconv.Itoa(max(q.Pagination.PageSize, 1)))

	var page reqresPage
	if err := r.http.getJSON(ctx, r.baseURL+"/users?"+params.Encode(), &page); err != nil {
		return Result{}, fmt.Errorf("loading %s: %w", q.Resource, err)
	}

	rows := make([]table.Row, 0, len(page.Data))
	for _, row := range page.Data {
		if row == nil {
			continue
		}
		row[FullNameColumn] = strings.TrimSpace(
			table.FormatValue(row["first_name"]) + " " + table.FormatValue(row["last_name"]))
		rows = append(rows, row)
	}
	rows = FilterRows(rows, q.Filters)

	logging.FromContext(ctx).Debug().
		Str("resource", q.Resource).
		Int("rows", len(rows)).
		Int("total_pages", page.TotalPages).
		Msg("reqres page loaded")

	return Result{
		Rows:           rows,
		TotalCount:     page.Total,
		TotalPageCount: max(page.TotalPages, 0),
	}, nil
}

// FilterRows keeps the rows whose column values contain every filter text,
// compared with Unicode case folding.
func FilterRows(rows []table.Row, filters table.FilterState) []table.Row {
	if filters.IsEmpty() {
		return rows
	}

	fold := cases.Fold()
	needles := make(map[string]string, len(filters))
	for col, text := range filters {
		if text != "" {
			needles[col] = fold.String(text)
		}
	}

	kept := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		match := true
		for col, needle := range needles {
			if !strings.Contains(fold.String(table.FormatValue(table.Lookup(row, col))), needle) {
				match = false
				break
			}
		}
		if match {
			kept = append(kept, row)
		}
	}
	return kept
}
