package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagedtable/internal/table"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "default", params: NewParams(10)},
		{name: "page 3", params: Params{Page: 3, PageSize: 50}},
		{name: "max size", params: Params{Page: 1, PageSize: MaxPageSize}},
		{name: "zero page", params: Params{Page: 0, PageSize: 10}, wantErr: ErrInvalidPage},
		{name: "negative page", params: Params{Page: -2, PageSize: 10}, wantErr: ErrInvalidPage},
		{name: "zero size", params: Params{Page: 1, PageSize: 0}, wantErr: ErrInvalidPageSize},
		{name: "too large", params: Params{Page: 1, PageSize: MaxPageSize + 1}, wantErr: ErrInvalidPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParams_StateConversion(t *testing.T) {
	p := Params{Page: 3, PageSize: 20}
	state := p.ToState()

	assert.Equal(t, table.PaginationState{PageIndex: 2, PageSize: 20}, state)
	assert.Equal(t, 40, state.Offset())
}

func TestParams_CalculateTotalPages(t *testing.T) {
	p := NewParams(10)
	assert.Equal(t, 0, p.CalculateTotalPages(0))
	assert.Equal(t, 1, p.CalculateTotalPages(7))
	assert.Equal(t, 50, p.CalculateTotalPages(500))
	assert.Equal(t, 51, p.CalculateTotalPages(501))
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name       string
		state      table.PaginationState
		totalPages int
		totalItems int
		want       Meta
	}{
		{
			name:       "first of many",
			state:      table.PaginationState{PageIndex: 0, PageSize: 10},
			totalPages: 50,
			totalItems: 500,
			want:       Meta{CurrentPage: 1, PageSize: 10, TotalPages: 50, TotalItems: 500, HasNext: true},
		},
		{
			name:       "middle",
			state:      table.PaginationState{PageIndex: 4, PageSize: 10},
			totalPages: 50,
			totalItems: 500,
			want: Meta{
				CurrentPage: 5, PageSize: 10, TotalPages: 50, TotalItems: 500,
				HasPrevious: true, HasNext: true,
			},
		},
		{
			name:       "last",
			state:      table.PaginationState{PageIndex: 1, PageSize: 6},
			totalPages: 2,
			totalItems: 12,
			want:       Meta{CurrentPage: 2, PageSize: 6, TotalPages: 2, TotalItems: 12, HasPrevious: true},
		},
		{
			name:       "empty",
			state:      table.PaginationState{PageIndex: 0, PageSize: 10},
			totalPages: 0,
			totalItems: -1,
			want:       Meta{CurrentPage: 1, PageSize: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMeta(tt.state, tt.totalPages, tt.totalItems))
		})
	}
}
