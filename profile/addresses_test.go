package profile

import "testing"

func TestValidateAddress(t *testing.T) {
	cases := []struct {
		name    string
		in      addressInput
		wantMsg string
	}{
		{
			name:    "valid",
			in:      addressInput{Street: "12 Cross St", City: "Coimbatore", State: "TN", Pincode: "641001", Phone: "9876543210"},
			wantMsg: "",
		},
		{
			name:    "pincode outside region",
			in:      addressInput{Pincode: "600001", Phone: "9876543210"},
			wantMsg: "Only Coimbatore pincodes allowed",
		},
		{
			name:    "pincode too short",
			in:      addressInput{Pincode: "6410", Phone: "9876543210"},
			wantMsg: "Only Coimbatore pincodes allowed",
		},
		{
			name:    "pincode with suffix",
			in:      addressInput{Pincode: "6410011", Phone: "9876543210"},
			wantMsg: "Only Coimbatore pincodes allowed",
		},
		{
			name:    "phone too short",
			in:      addressInput{Pincode: "641001", Phone: "98765"},
			wantMsg: "Phone must be 10 digits",
		},
		{
			name:    "phone with letters",
			in:      addressInput{Pincode: "641001", Phone: "98765abcde"},
			wantMsg: "Phone must be 10 digits",
		},
		{
			name:    "phone too long",
			in:      addressInput{Pincode: "641001", Phone: "98765432101"},
			wantMsg: "Phone must be 10 digits",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := validateAddress(c.in); got != c.wantMsg {
				t.Errorf("validateAddress(%+v) = %q, want %q", c.in, got, c.wantMsg)
			}
		})
	}
}
