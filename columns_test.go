package notifyutils

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases", input: "Phone Number", want: "phonenumber"},
		{name: "strips underscores", input: "phone_number", want: "phonenumber"},
		{name: "strips hyphens", input: "phone-number", want: "phonenumber"},
		{name: "mixed junk", input: " First_Name- ", want: "firstname"},
		{name: "already normalized", input: "emailaddress", want: "emailaddress"},
		{name: "empty", input: "", want: ""},
		{name: "unicode kept", input: "Café Name", want: "caféname"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeKey(tt.input); got != tt.want {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestColumnsGet(t *testing.T) {
	t.Parallel()

	columns := NewColumns(Personalisation{
		"Phone Number": "+16502530000",
		"first_name":   "Jo",
	})

	tests := []struct {
		name string
		key  string
		want any
		ok   bool
	}{
		{name: "exact spelling", key: "Phone Number", want: "+16502530000", ok: true},
		{name: "different spelling", key: "PHONENUMBER", want: "+16502530000", ok: true},
		{name: "underscored lookup", key: "phone_number", want: "+16502530000", ok: true},
		{name: "other column", key: "First Name", want: "Jo", ok: true},
		{name: "missing", key: "last name", want: nil, ok: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := columns.Get(tt.key)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Get(%q) = (%v, %v), want (%v, %v)", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestColumnsKeys(t *testing.T) {
	t.Parallel()

	columns := NewColumns(Personalisation{
		"Zebra":      1,
		"apple pie":  2,
		"First_Name": 3,
	})

	want := []string{"applepie", "firstname", "zebra"}
	if diff := cmp.Diff(want, columns.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if columns.Len() != 3 {
		t.Errorf("Len() = %d, want 3", columns.Len())
	}
}

func TestColumnsOriginalKey(t *testing.T) {
	t.Parallel()

	columns := NewColumns(Personalisation{"Phone Number": "x"})

	if got := columns.OriginalKey("phone_number"); got != "Phone Number" {
		t.Errorf("OriginalKey(phone_number) = %q, want %q", got, "Phone Number")
	}
	if got := columns.OriginalKey("unknown"); got != "unknown" {
		t.Errorf("OriginalKey(unknown) = %q, want it echoed back", got)
	}
}
