package models

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		if !ValidStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}

	invalid := []string{"", "placed", "order placed", "Cancelled", "Returned", "DELIVERED"}
	for _, s := range invalid {
		if ValidStatus(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}
