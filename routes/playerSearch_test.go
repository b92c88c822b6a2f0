package routes

import "testing"

func TestListingStatusForAccepted(t *testing.T) {
	cases := []struct {
		accepted, needed int
		want             string
	}{
		{0, 3, "open"},
		{1, 3, "open"},
		{2, 3, "open"},
		{3, 3, "filled"},
		{4, 3, "filled"},
		{1, 1, "filled"},
	}
	for _, tc := range cases {
		if got := listingStatusForAccepted(tc.accepted, tc.needed); got != tc.want {
			t.Errorf("listingStatusForAccepted(%d, %d) = %q, want %q",
				tc.accepted, tc.needed, got, tc.want)
		}
	}
}
