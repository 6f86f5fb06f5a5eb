package catalog

import (
	"testing"

	"ordersift/internal"
)

func testEntries() []internal.CatalogEntry {
	return []internal.CatalogEntry{
		{Code: "A100", Name: "Steel Bracket", Price: 10, AvailableInStock: 5, MinOrderQuantity: 2},
		{Code: "B200", Name: "Copper Wire 2mm", Price: 4.5, AvailableInStock: 120, MinOrderQuantity: 10},
		{Code: "B201", Name: "Copper Wire 4mm", Price: 6, AvailableInStock: 80, MinOrderQuantity: 10},
	}
}

func TestLookupByCodeUnknown(t *testing.T) {
	idx := BuildIndex(testEntries())
	if _, ok := idx.LookupByCode("Z999"); ok {
		t.Fatal("Z999 should not be found")
	}
}

func TestFindByNameRowOrder(t *testing.T) {
	idx := BuildIndex(testEntries())
	matches := idx.FindByName("copper wire")
	if len(matches) != 2 {
		t.Fatalf("len=%d", len(matches))
	}
	if matches[0].Code != "B200" {
		t.Fatalf("first match %s, want catalog row order", matches[0].Code)
	}
}

func TestFindByNameEmpty(t *testing.T) {
	idx := BuildIndex(testEntries())
	if matches := idx.FindByName("   "); matches != nil {
		t.Fatalf("matches=%v", matches)
	}
}

func TestDuplicateCodeFirstRowWins(t *testing.T) {
	idx := BuildIndex([]internal.CatalogEntry{
		{Code: "D1", Name: "First", Price: 1},
		{Code: "D1", Name: "Second", Price: 2},
	})
	entry, ok := idx.LookupByCode("D1")
	if !ok || entry.Name != "First" {
		t.Fatalf("entry=%+v ok=%v", entry, ok)
	}
}
