package catalog

import (
	"strings"

	"ordersift/internal"
	"ordersift/internal/util"
)

// Index is a read-only view over the catalog. Built once at startup,
// safe for concurrent lookups.
type Index struct {
	entries []internal.CatalogEntry
	byCode  map[string]internal.CatalogEntry
}

func BuildIndex(entries []internal.CatalogEntry) *Index {
	idx := &Index{
		entries: entries,
		byCode:  make(map[string]internal.CatalogEntry, len(entries)),
	}
	for _, e := range entries {
		norm := util.NormalizeCode(e.Code)
		if norm == "" {
			continue
		}
		// First row wins on duplicate codes, matching catalog row order.
		if _, exists := idx.byCode[norm]; !exists {
			idx.byCode[norm] = e
		}
	}
	return idx
}

func (idx *Index) Len() int { return len(idx.entries) }

// Entries returns catalog rows in source order.
func (idx *Index) Entries() []internal.CatalogEntry { return idx.entries }

func (idx *Index) LookupByCode(code string) (internal.CatalogEntry, bool) {
	entry, ok := idx.byCode[util.NormalizeCode(code)]
	return entry, ok
}

// FindByName returns entries whose display name contains name
// case-insensitively, in catalog row order. The first match is
// canonical for single-match callers.
func (idx *Index) FindByName(name string) []internal.CatalogEntry {
	needle := strings.ToLower(util.NormalizeWhitespace(name))
	if needle == "" {
		return nil
	}
	var out []internal.CatalogEntry
	for _, e := range idx.entries {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			out = append(out, e)
		}
	}
	return out
}
