package source

import (
	"context"
	"fmt"
	"slices"

	"github.com/rshade/pagedtable/internal/table"
)

// Backend names the API serving a resource.
type Backend string

// Backends.
const (
	BackendJSONPlaceholder Backend = "jsonplaceholder"
	BackendReqRes          Backend = "reqres"
)

// Resource describes a browsable collection.
type Resource struct {
	Name        string
	Title       string
	Description string
	Backend     Backend
	Columns     []table.Column
}

// ColumnIDs returns the IDs of the resource's columns in display order.
func (r Resource) ColumnIDs() []string {
	ids := make([]string, 0, len(r.Columns))
	for _, c := range r.Columns {
		ids = append(ids, c.ID)
	}
	return ids
}

// HasColumn reports whether id names one of the resource's columns.
func (r Resource) HasColumn(id string) bool {
	return slices.Contains(r.ColumnIDs(), id)
}

// Column widths are in terminal cells.
const (
	widthID     = 6
	widthShort  = 12
	widthMedium = 18
	widthName   = 24
	widthEmail  = 28
	widthText   = 40
	widthBody   = 50
)

// Catalog returns the browsable resources in menu order.
func Catalog() []Resource {
	return []Resource{
		{
			Name:        "comments",
			Title:       "Comments",
			Description: "500 comments, filtered on the server",
			Backend:     BackendJSONPlaceholder,
			Columns: []table.Column{
				{ID: "id", Label: "ID", DefaultWidth: widthID},
				{ID: "email", Label: "Email", DefaultWidth: widthEmail},
				{ID: "name", Label: "Name", DefaultWidth: widthText},
				{ID: "body", Label: "Comment", DefaultWidth: widthBody},
			},
		},
		{
			Name:        "posts",
			Title:       "Posts",
			Description: "100 posts, filtered on the server",
			Backend:     BackendJSONPlaceholder,
			Columns: []table.Column{
				{ID: "id", Label: "ID", DefaultWidth: widthID},
				{ID: "title", Label: "Title", DefaultWidth: widthText},
				{ID: "body", Label: "Content", DefaultWidth: widthBody},
				{ID: "userId", Label: "User ID", DefaultWidth: widthID + 2},
			},
		},
		{
			Name:        "users",
			Title:       "Users",
			Description: "10 users with nested company data",
			Backend:     BackendJSONPlaceholder,
			Columns: []table.Column{
				{ID: "name", Label: "Name", DefaultWidth: widthName},
				{ID: "username", Label: "Username", DefaultWidth: widthShort + 4},
				{ID: "email", Label: "Email", DefaultWidth: widthEmail},
				{ID: "phone", Label: "Phone", DefaultWidth: widthName},
				{ID: "website", Label: "Website", DefaultWidth: widthMedium},
				{ID: "company.name", Label: "Company", DefaultWidth: widthName},
			},
		},
		{
			Name:        reqresPeople,
			Title:       "People",
			Description: "ReqRes users, filtered within the page",
			Backend:     BackendReqRes,
			Columns: []table.Column{
				{ID: "first_name", Label: "First Name", DefaultWidth: widthMedium},
				{ID: "last_name", Label: "Last Name", DefaultWidth: widthMedium},
				{ID: "email", Label: "Email", DefaultWidth: widthEmail},
				{ID: FullNameColumn, Label: "Full Name", DefaultWidth: widthName},
			},
		},
	}
}

// Names returns the resource names in menu order.
func Names() []string {
	resources := Catalog()
	names := make([]string, 0, len(resources))
	for _, r := range resources {
		names = append(names, r.Name)
	}
	return names
}

// Lookup returns the resource called name.
func Lookup(name string) (Resource, error) {
	for _, r := range Catalog() {
		if r.Name == name {
			return r, nil
		}
	}
	return Resource{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownResource, name, Names())
}

// Mux routes each query to the loader of its resource's backend.
type Mux struct {
	backends map[Backend]Loader
}

// NewMux returns a Mux over the given backend loaders.
func NewMux(backends map[Backend]Loader) *Mux {
	return &Mux{backends: backends}
}

// Load implements Loader.
func (m *Mux) Load(ctx context.Context, q Query) (Result, error) {
	res, err := Lookup(q.Resource)
	if err != nil {
		return Result{}, err
	}
	loader, ok := m.backends[res.Backend]
	if !ok {
		return Result{}, fmt.Errorf("%w: no loader for backend %s", ErrUnknownResource, res.Backend)
	}
	return loader.Load(ctx, q)
}
