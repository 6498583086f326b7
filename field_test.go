package notifyutils

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFieldPlaceholderNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "single placeholder",
			content: "Hello ((name))",
			want:    []string{"name"},
		},
		{
			name:    "order of first appearance",
			content: "((b)) then ((a)) then ((b)) again",
			want:    []string{"b", "a"},
		},
		{
			name:    "different spellings deduplicated",
			content: "((first name)) and ((first_name))",
			want:    []string{"first name"},
		},
		{
			name:    "conditional placeholder",
			content: "((show url??Visit example.com))",
			want:    []string{"show url"},
		},
		{
			name:    "no placeholders",
			content: "plain text with (single) parentheses",
			want:    nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewField(tt.content).PlaceholderNames()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("PlaceholderNames() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFieldString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		opts    []FieldOption
		want    string
	}{
		{
			name:    "no values highlights placeholder",
			content: "Hello ((name))",
			want:    "Hello <span class='placeholder'>((name))</span>",
		},
		{
			name:    "value substituted",
			content: "Hello ((name))",
			opts:    []FieldOption{WithValues(Personalisation{"name": "Jo"})},
			want:    "Hello Jo",
		},
		{
			name:    "case insensitive lookup",
			content: "Hello ((First Name))",
			opts:    []FieldOption{WithValues(Personalisation{"first_name": "Jo"})},
			want:    "Hello Jo",
		},
		{
			name:    "missing value redacted",
			content: "Hello ((name))",
			opts:    []FieldOption{WithValues(Personalisation{"other": "x"}), WithRedactMissing()},
			want:    "Hello <span class='placeholder-redacted'>hidden</span>",
		},
		{
			name:    "numeric value",
			content: "((count)) messages",
			opts:    []FieldOption{WithValues(Personalisation{"count": 3})},
			want:    "3 messages",
		},
		{
			name:    "value escaped",
			content: "Hello ((name))",
			opts: []FieldOption{
				WithValues(Personalisation{"name": "<script>"}),
				WithSanitizeMode(SanitizeEscape),
			},
			want: "Hello &lt;script&gt;",
		},
		{
			name:    "content escaped too",
			content: "a <b> ((name))",
			opts: []FieldOption{
				WithValues(Personalisation{"name": "Jo"}),
				WithSanitizeMode(SanitizeEscape),
			},
			want: "a &lt;b&gt; Jo",
		},
		{
			name:    "conditional shown when truthy",
			content: "((has_stuff??Bring your stuff))",
			opts:    []FieldOption{WithValues(Personalisation{"has_stuff": "yes"})},
			want:    "Bring your stuff",
		},
		{
			name:    "conditional hidden when falsy",
			content: "((has_stuff??Bring your stuff))",
			opts:    []FieldOption{WithValues(Personalisation{"has_stuff": "no"})},
			want:    "",
		},
		{
			name:    "conditional highlighted without value",
			content: "((has_stuff??Bring your stuff))",
			want:    "<span class='placeholder'>((has_stuff??Bring your stuff))</span>",
		},
		{
			name:    "conditional interpolates value",
			content: "((url??Visit {} today))",
			opts:    []FieldOption{WithValues(Personalisation{"url": "example.com"})},
			want:    "Visit example.com today",
		},
		{
			name:    "list value formatted inline",
			content: "Order: ((items))",
			opts:    []FieldOption{WithValues(Personalisation{"items": []string{"a", "b", "c"}})},
			want:    "Order: a, b and c",
		},
		{
			name:    "list value as markdown",
			content: "Order:((items))",
			opts: []FieldOption{
				WithValues(Personalisation{"items": []any{"a", "b"}}),
				WithMarkdownLists(),
			},
			want: "Order:\n\n* a\n* b",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewField(tt.content, tt.opts...).String()
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFieldReplaced(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		values  Personalisation
		want    string
		wantErr error
	}{
		{
			name:    "all values present",
			content: "Hello ((name)), ref ((ref))",
			values:  Personalisation{"name": "Jo", "ref": "1234"},
			want:    "Hello Jo, ref 1234",
		},
		{
			name:    "missing value errors",
			content: "Hello ((name))",
			values:  Personalisation{},
			wantErr: ErrMissingPersonalisation,
		},
		{
			name:    "nil value errors",
			content: "Hello ((name))",
			values:  Personalisation{"name": nil},
			wantErr: ErrMissingPersonalisation,
		},
		{
			name:    "missing conditional is silent",
			content: "Hi((extra?? there))",
			values:  Personalisation{},
			want:    "Hi",
		},
		{
			name:    "falsy conditional drops text",
			content: "Hi((extra?? there))",
			values:  Personalisation{"extra": false},
			want:    "Hi",
		},
		{
			name:    "truthy conditional keeps text",
			content: "Hi((extra?? there))",
			values:  Personalisation{"extra": true},
			want:    "Hi there",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewField(tt.content, WithValues(tt.values)).Replaced()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Replaced() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Replaced() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Replaced() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "nil", value: nil, want: false},
		{name: "false", value: false, want: false},
		{name: "true", value: true, want: true},
		{name: "empty string", value: "", want: false},
		{name: "word no", value: "No", want: false},
		{name: "word false", value: "FALSE", want: false},
		{name: "zero string", value: "0", want: false},
		{name: "other string", value: "anything", want: true},
		{name: "zero int", value: 0, want: false},
		{name: "nonzero float", value: 1.5, want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := truthy(tt.value); got != tt.want {
				t.Errorf("truthy(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
