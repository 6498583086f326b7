package notifyutils

// TemplateChange compares the placeholders of two versions of a
// template, to warn when an edit breaks existing uploads.
type TemplateChange struct {
	Old Template
	New Template
}

// NewTemplateChange pairs two template versions.
func NewTemplateChange(old, updated Template) TemplateChange {
	return TemplateChange{Old: old, New: updated}
}

// PlaceholdersAdded lists placeholders the new version introduces.
func (c TemplateChange) PlaceholdersAdded() []string {
	return placeholderDiff(c.New.Placeholders(), c.Old.Placeholders())
}

// PlaceholdersRemoved lists placeholders the new version drops.
func (c TemplateChange) PlaceholdersRemoved() []string {
	return placeholderDiff(c.Old.Placeholders(), c.New.Placeholders())
}

// HasDifferentPlaceholders reports whether the two versions disagree on
// any placeholder.
func (c TemplateChange) HasDifferentPlaceholders() bool {
	return len(c.PlaceholdersAdded()) > 0 || len(c.PlaceholdersRemoved()) > 0
}

// placeholderDiff returns the names in a but not in b, compared by
// normalized key.
func placeholderDiff(a, b []string) []string {
	present := make(map[string]struct{}, len(b))
	for _, name := range b {
		present[NormalizeKey(name)] = struct{}{}
	}
	var diff []string
	for _, name := range a {
		if _, ok := present[NormalizeKey(name)]; !ok {
			diff = append(diff, name)
		}
	}
	return diff
}
