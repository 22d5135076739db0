package orders

import (
	"testing"

	"dotshop/models"
)

func TestCheckoutTotal(t *testing.T) {
	lines := []checkoutLine{
		{Product: models.Product{ProductID: "p1", Price: 120.50}, Quantity: 1},
		{Product: models.Product{ProductID: "p2", Price: 40.00}, Quantity: 3},
	}

	got := checkoutTotal(lines)
	want := 120.50*1 + 40.00*3
	if got != want {
		t.Fatalf("expected total %.2f, got %.2f", want, got)
	}
}

func TestCheckoutTotalEmpty(t *testing.T) {
	if got := checkoutTotal(nil); got != 0 {
		t.Fatalf("empty checkout should total 0, got %.2f", got)
	}
}

func TestToPaise(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{1, 100},
		{120.50, 12050},
		{99.99, 9999},
		{0.1 + 0.2, 30}, // float noise must round away
	}
	for _, c := range cases {
		if got := toPaise(c.amount); got != c.want {
			t.Errorf("toPaise(%v) = %d, want %d", c.amount, got, c.want)
		}
	}
}
