package cart

import (
	"testing"

	"dotshop/models"
)

func TestAddLine(t *testing.T) {
	items := []models.CartLine{}

	items = addLine(items, "p1", 2)
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected one line with quantity 2, got %+v", items)
	}

	// adding the same product again bumps quantity instead of duplicating
	items = addLine(items, "p1", 3)
	if len(items) != 1 {
		t.Fatalf("expected a single line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}

	items = addLine(items, "p2", 1)
	if len(items) != 2 {
		t.Fatalf("expected two lines, got %d", len(items))
	}
}

func TestSetQuantity(t *testing.T) {
	items := []models.CartLine{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 4},
	}

	items, found := setQuantity(items, "p2", 7)
	if !found {
		t.Fatal("expected p2 to be found")
	}
	if items[1].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", items[1].Quantity)
	}

	if _, found := setQuantity(items, "missing", 1); found {
		t.Fatal("expected missing product to report not found")
	}
}

func TestRemoveLine(t *testing.T) {
	items := []models.CartLine{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 2},
		{ProductID: "p3", Quantity: 3},
	}

	items = removeLine(items, "p2")
	if len(items) != 2 {
		t.Fatalf("expected two lines after removal, got %d", len(items))
	}
	for _, it := range items {
		if it.ProductID == "p2" {
			t.Fatal("p2 should have been removed")
		}
	}

	// removing an absent product is a no-op
	items = removeLine(items, "nope")
	if len(items) != 2 {
		t.Fatalf("expected removal of absent product to be a no-op, got %d lines", len(items))
	}
}
