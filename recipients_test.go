package notifyutils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecipientCSVEmail(t *testing.T) {
	t.Parallel()

	data := "email address,name\njo@example.com,Jo\nsam@example.com,Sam\n"
	recipients, err := NewRecipientCSV(data,
		WithTemplateType(TemplateTypeEmail),
		WithPlaceholders([]string{"name"}),
	)
	if err != nil {
		t.Fatalf("NewRecipientCSV: %v", err)
	}

	if got := recipients.RowCount(); got != 2 {
		t.Fatalf("RowCount() = %d, want 2", got)
	}
	if missing := recipients.MissingColumnHeaders(); len(missing) != 0 {
		t.Errorf("MissingColumnHeaders() = %v, want none", missing)
	}
	if recipients.HasErrors() {
		t.Errorf("HasErrors() = true, want false")
	}

	row := recipients.Rows()[1]
	cell, ok := row.Get("EMAIL_ADDRESS")
	if !ok || cell.Value != "sam@example.com" {
		t.Errorf("Get(EMAIL_ADDRESS) = (%+v, %v), want sam@example.com", cell, ok)
	}
	if value, _ := row.Personalisation().Get("name"); value != "Sam" {
		t.Errorf("Personalisation name = %v, want Sam", value)
	}
}

func TestRecipientCSVBadRecipients(t *testing.T) {
	t.Parallel()

	data := "phone number\n+16502530000\nnot a number\n123\n"
	recipients, err := NewRecipientCSV(data, WithTemplateType(TemplateTypeSMS))
	if err != nil {
		t.Fatalf("NewRecipientCSV: %v", err)
	}

	want := []int{1, 2}
	if diff := cmp.Diff(want, recipients.RowsWithBadRecipients()); diff != "" {
		t.Errorf("RowsWithBadRecipients() mismatch (-want +got):\n%s", diff)
	}
	if !recipients.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}
}

func TestRecipientCSVMissingData(t *testing.T) {
	t.Parallel()

	data := "email address,name,day\njo@example.com,Jo,\nsam@example.com,,Tuesday\n"
	recipients, err := NewRecipientCSV(data,
		WithPlaceholders([]string{"name", "day"}),
	)
	if err != nil {
		t.Fatalf("NewRecipientCSV: %v", err)
	}

	if diff := cmp.Diff([]int{0, 1}, recipients.RowsWithMissingData()); diff != "" {
		t.Errorf("RowsWithMissingData() mismatch (-want +got):\n%s", diff)
	}

	row := recipients.Rows()[0]
	if diff := cmp.Diff([]string{"day"}, row.MissingColumns()); diff != "" {
		t.Errorf("MissingColumns() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecipientCSVMissingColumnHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		opts []RecipientCSVOption
		want []string
	}{
		{
			name: "missing recipient column",
			data: "name\nJo\n",
			opts: []RecipientCSVOption{WithTemplateType(TemplateTypeEmail)},
			want: []string{"email address"},
		},
		{
			name: "missing placeholder column",
			data: "email address\njo@example.com\n",
			opts: []RecipientCSVOption{WithPlaceholders([]string{"reference"})},
			want: []string{"reference"},
		},
		{
			name: "letter needs an address column",
			data: "name\nJo\n",
			opts: []RecipientCSVOption{WithTemplateType(TemplateTypeLetter)},
			want: []string{"address line 1"},
		},
		{
			name: "letter with one address column is enough",
			data: "address line 1,postcode\n123 Street,SW1A 1AA\n",
			opts: []RecipientCSVOption{WithTemplateType(TemplateTypeLetter)},
			want: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			recipients, err := NewRecipientCSV(tt.data, tt.opts...)
			if err != nil {
				t.Fatalf("NewRecipientCSV: %v", err)
			}
			if diff := cmp.Diff(tt.want, recipients.MissingColumnHeaders()); diff != "" {
				t.Errorf("MissingColumnHeaders() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecipientCSVLetterAddressValidation(t *testing.T) {
	t.Parallel()

	data := "address line 1,address line 2,postcode,name\n" +
		"Jo Bloggs,123 Street,SW1A 1AA,Jo\n" +
		"Sam Short,,,Sam\n"
	recipients, err := NewRecipientCSV(data, WithTemplateType(TemplateTypeLetter))
	if err != nil {
		t.Fatalf("NewRecipientCSV: %v", err)
	}

	rows := recipients.Rows()
	if rows[0].HasBadRecipient() {
		t.Errorf("row 0 recipient error: %v", rows[0].RecipientError())
	}
	if !rows[1].HasBadRecipient() {
		t.Error("row 1 should fail with too few address lines")
	}
}

func TestRecipientCSVSafelist(t *testing.T) {
	t.Parallel()

	data := "phone number\n+16502530000\n+16502530001\n"
	recipients, err := NewRecipientCSV(data,
		WithTemplateType(TemplateTypeSMS),
		WithSafelist([]string{"(650) 253-0000"}),
	)
	if err != nil {
		t.Fatalf("NewRecipientCSV: %v", err)
	}

	rows := recipients.Rows()
	if rows[0].HasBadRecipient() {
		t.Errorf("safelisted recipient rejected: %v", rows[0].RecipientError())
	}
	if !rows[1].HasBadRecipient() {
		t.Error("recipient outside safelist should be rejected")
	}
}

func TestRecipientCSVRowLimit(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("email address\n")
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "jo%d@example.com\n", i)
	}

	recipients, err := NewRecipientCSV(b.String(), WithMaxRows(3))
	if err != nil {
		t.Fatalf("NewRecipientCSV: %v", err)
	}

	if !recipients.TooManyRows() {
		t.Error("TooManyRows() = false, want true")
	}
	if got := recipients.RowCount(); got != 3 {
		t.Errorf("RowCount() = %d, want 3", got)
	}
	if !recipients.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}
}

func TestRecipientCSVSkipsEmptyRows(t *testing.T) {
	t.Parallel()

	data := "email address\njo@example.com\n\n  \nsam@example.com\n"
	recipients, err := NewRecipientCSV(data)
	if err != nil {
		t.Fatalf("NewRecipientCSV: %v", err)
	}
	if got := recipients.RowCount(); got != 2 {
		t.Errorf("RowCount() = %d, want 2", got)
	}
}

func TestRecipientCSVFragmentCounts(t *testing.T) {
	t.Parallel()

	data := "phone number,name\n+16502530000,Jo\n+16502530000," + strings.Repeat("x", 170) + "\n"
	recipients, err := NewRecipientCSV(data,
		WithTemplateType(TemplateTypeSMS),
		WithPlaceholders([]string{"name"}),
		WithSMSContent("Hello ((name))"),
	)
	if err != nil {
		t.Fatalf("NewRecipientCSV: %v", err)
	}

	rows := recipients.Rows()
	if got := rows[0].FragmentCount(); got != 1 {
		t.Errorf("row 0 FragmentCount() = %d, want 1", got)
	}
	if got := rows[1].FragmentCount(); got != 2 {
		t.Errorf("row 1 FragmentCount() = %d, want 2", got)
	}
	if got := recipients.TotalFragmentCount(); got != 3 {
		t.Errorf("TotalFragmentCount() = %d, want 3", got)
	}
}

func TestRecipientCSVDuplicateColumnHeaders(t *testing.T) {
	t.Parallel()

	data := "email address,Name,NAME,name\njo@example.com,a,b,c\n"
	recipients, err := NewRecipientCSV(data, WithPlaceholders([]string{"name"}))
	if err != nil {
		t.Fatalf("NewRecipientCSV: %v", err)
	}

	if diff := cmp.Diff([]string{"Name"}, recipients.DuplicateColumnHeaders()); diff != "" {
		t.Errorf("DuplicateColumnHeaders() mismatch (-want +got):\n%s", diff)
	}
	if !recipients.HasErrors() {
		t.Error("HasErrors() = false with duplicate headers")
	}
}

func TestRecipientCSVIgnoredColumns(t *testing.T) {
	t.Parallel()

	data := "email address,name,internal note\njo@example.com,Jo,keep\n"
	recipients, err := NewRecipientCSV(data, WithPlaceholders([]string{"name"}))
	if err != nil {
		t.Fatalf("NewRecipientCSV: %v", err)
	}

	row := recipients.Rows()[0]
	if cell, _ := row.Get("name"); cell.Ignored {
		t.Error("placeholder column flagged as ignored")
	}
	if cell, _ := row.Get("email address"); cell.Ignored {
		t.Error("recipient column flagged as ignored")
	}
	if cell, _ := row.Get("internal note"); !cell.Ignored {
		t.Error("unused column not flagged as ignored")
	}
}

func TestRecipientCSVParseErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewRecipientCSV(""); err == nil {
		t.Error("empty upload should fail")
	}
}
