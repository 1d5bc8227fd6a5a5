package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrEmptyResource is returned by GenerateKey when no resource is named.
var ErrEmptyResource = errors.New("cache key requires a resource")

// KeyParams identifies one page request.
type KeyParams struct {
	Resource  string
	PageIndex int
	PageSize  int
	// Filters are the applied column filters. Empty values are ignored.
	Filters map[string]string
}

type filterPair struct {
	Column string `json:"c"`
	Text   string `json:"t"`
}

type normalizedKey struct {
	Resource  string       `json:"r"`
	PageIndex int          `json:"i"`
	PageSize  int          `json:"s"`
	Filters   []filterPair `json:"f,omitempty"`
}

// GenerateKey returns a deterministic hex SHA-256 key for params. The
// resource name is trimmed and lowercased and filters are sorted by column,
// so equivalent queries always share a key.
func GenerateKey(params KeyParams) (string, error) {
	resource := strings.ToLower(strings.TrimSpace(params.Resource))
	if resource == "" {
		return "", ErrEmptyResource
	}

	norm := normalizedKey{
		Resource:  resource,
		PageIndex: params.PageIndex,
		PageSize:  params.PageSize,
	}
	for col, text := range params.Filters {
		col = strings.TrimSpace(col)
		if col == "" || text == "" {
			continue
		}
		norm.Filters = append(norm.Filters, filterPair{Column: col, Text: text})
	}
	sort.Slice(norm.Filters, func(i, j int) bool {
		return norm.Filters[i].Column < norm.Filters[j].Column
	})

	encoded, err := json.Marshal(norm)
	if err != nil {
		return "", fmt.Errorf("encoding cache key: %w", err)
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}
