package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagedtable/internal/source"
	"github.com/rshade/pagedtable/internal/table"
)

func TestParseFilters(t *testing.T) {
	res, err := source.Lookup("users")
	require.NoError(t, err)

	tests := []struct {
		name    string
		exprs   []string
		want    table.FilterState
		wantErr error
	}{
		{name: "none", exprs: nil, want: table.FilterState{}},
		{name: "single", exprs: []string{"name=Leanne"}, want: table.FilterState{"name": "Leanne"}},
		{name: "nested column", exprs: []string{"company.name=Group"}, want: table.FilterState{"company.name": "Group"}},
		{name: "value with equals", exprs: []string{"email=a=b"}, want: table.FilterState{"email": "a=b"}},
		{name: "later wins", exprs: []string{"name=a", "name=b"}, want: table.FilterState{"name": "b"}},
		{name: "empty text clears", exprs: []string{"name=a", "name="}, want: table.FilterState{}},
		{name: "blank skipped", exprs: []string{"", "  "}, want: table.FilterState{}},
		{name: "spaces around column", exprs: []string{" name =x"}, want: table.FilterState{"name": "x"}},
		{name: "missing equals", exprs: []string{"name"}, wantErr: ErrInvalidFilter},
		{name: "missing column", exprs: []string{"=x"}, wantErr: ErrInvalidFilter},
		{name: "unknown column", exprs: []string{"title=x"}, wantErr: ErrUnknownColumn},
		{name: "one bad fails all", exprs: []string{"name=a", "bogus"}, wantErr: ErrInvalidFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilters(context.Background(), res, tt.exprs)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncateCell(t *testing.T) {
	assert.Equal(t, "short", truncateCell("short", 10))
	assert.Equal(t, "a b", truncateCell("a\n\tb", 10))
	assert.Equal(t, "abcd…", truncateCell("abcdefghij", 5))
	assert.Equal(t, "unbounded", truncateCell("unbounded", 0))
}
