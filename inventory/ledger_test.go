package inventory

import "testing"

func TestFieldForGender(t *testing.T) {
	cases := []struct {
		gender string
		want   string
	}{
		{"male", "mens"},
		{"female", "womens"},
		{"others", "womens"},
		{"", "womens"},
	}
	for _, tc := range cases {
		if got := FieldForGender(tc.gender); got != tc.want {
			t.Fatalf("FieldForGender(%q) = %q, want %q", tc.gender, got, tc.want)
		}
	}
}
