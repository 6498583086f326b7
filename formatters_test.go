package notifyutils

import "testing"

func TestEscapeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "angle brackets", input: "<script>", want: "&lt;script&gt;"},
		{name: "ampersand", input: "fish & chips", want: "fish &amp; chips"},
		{name: "quotes untouched", input: `say "hi"`, want: `say "hi"`},
		{name: "already escaped doubles", input: "&amp;", want: "&amp;amp;"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := EscapeHTML(tt.input); got != tt.want {
				t.Errorf("EscapeHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "tags removed", input: "a <b>bold</b> claim", want: "a bold claim"},
		{name: "script removed", input: `before<script>alert(1)</script>after`, want: "beforeafter"},
		{name: "plain text unchanged", input: "no markup here", want: "no markup here"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := StripHTML(tt.input); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeNewlines(t *testing.T) {
	t.Parallel()

	if got := NormalizeNewlines("a\r\nb\rc\nd"); got != "a\nb\nc\nd" {
		t.Errorf("NormalizeNewlines = %q, want %q", got, "a\nb\nc\nd")
	}
}

func TestRemoveWhitespaceBeforePunctuation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "space before comma", input: "one , two", want: "one, two"},
		{name: "tab before full stop", input: "done\t.", want: "done."},
		{name: "normal text unchanged", input: "one, two.", want: "one, two."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := RemoveWhitespaceBeforePunctuation(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplaceHyphensWithEnDashes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "spaced hyphen", input: "one - two", want: "one – two"},
		{name: "spaced double hyphen", input: "one -- two", want: "one – two"},
		{name: "compound word kept", input: "check-in", want: "check-in"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ReplaceHyphensWithEnDashes(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSmartenQuotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "double quotes curled",
			input: `say "hello" now`,
			want:  "say “hello” now",
		},
		{
			name:  "apostrophe in contraction",
			input: "it's fine",
			want:  "it’s fine",
		},
		{
			name:  "opening single quote",
			input: "he said 'hi'",
			want:  "he said ‘hi’",
		},
		{
			name:  "attribute values untouched",
			input: `<a href="https://example.com">link</a> and "text"`,
			want:  `<a href="https://example.com">link</a> and “text”`,
		},
		{
			name:  "anchor text untouched",
			input: `<a href="#">don't</a>`,
			want:  `<a href="#">don't</a>`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SmartenQuotes(tt.input); got != tt.want {
				t.Errorf("SmartenQuotes(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNiceTypography(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "full pass",
			input: `Hello , "world" - it's o'clock .`,
			want:  "Hello, “world” – it’s o’clock.",
		},
		{
			name:  "email apostrophe straightened",
			input: "contact o'brien@example.com today",
			want:  "contact o'brien@example.com today",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NiceTypography(tt.input); got != tt.want {
				t.Errorf("NiceTypography(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAutolinkURLs(t *testing.T) {
	t.Parallel()

	got := AutolinkURLs("see https://example.com/page now")
	want := `see <a style="word-wrap: break-word;" href="https://example.com/page">https://example.com/page</a> now`
	if got != want {
		t.Errorf("AutolinkURLs = %q, want %q", got, want)
	}

	if got := AutolinkURLs("no links here"); got != "no links here" {
		t.Errorf("AutolinkURLs should leave plain text alone, got %q", got)
	}
}

func TestNl2br(t *testing.T) {
	t.Parallel()

	if got := Nl2br("a\nb\nc"); got != "a<br>b<br>c" {
		t.Errorf("Nl2br = %q, want %q", got, "a<br>b<br>c")
	}
}

func TestFormattedList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		items  []string
		before string
		after  string
		want   string
	}{
		{name: "empty", items: nil, want: ""},
		{name: "one item", items: []string{"a"}, want: "a"},
		{name: "two items", items: []string{"a", "b"}, want: "a and b"},
		{name: "three items", items: []string{"a", "b", "c"}, want: "a, b and c"},
		{name: "wrapped", items: []string{"a", "b"}, before: "‘", after: "’", want: "‘a’ and ‘b’"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormattedList(tt.items, tt.before, tt.after); got != tt.want {
				t.Errorf("FormattedList(%v) = %q, want %q", tt.items, got, tt.want)
			}
		})
	}
}
