package notifyutils

import (
	"sort"
	"strings"
)

// Personalisation maps placeholder names to the values substituted into a
// template. Values may be strings, numbers, booleans, or slices of
// strings (rendered as lists).
type Personalisation map[string]any

// keyJunk lists the characters ignored when comparing column names, so
// "Phone Number", "phone_number" and "PHONENUMBER" address the same
// column.
const keyJunk = " -_"

// NormalizeKey lowercases a column or placeholder name and strips
// spaces, hyphens, and underscores.
func NormalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.Map(func(r rune) rune {
		if strings.ContainsRune(keyJunk, r) {
			return -1
		}
		return r
	}, key)
	return key
}

// Columns is a lookup over personalisation values keyed by normalized
// column name. The original spelling of each key is retained for
// reporting.
type Columns struct {
	values   map[string]any
	original map[string]string
}

// NewColumns builds a Columns lookup from raw personalisation. Later
// keys win when two raw keys normalize to the same name.
func NewColumns(personalisation Personalisation) Columns {
	c := Columns{
		values:   make(map[string]any, len(personalisation)),
		original: make(map[string]string, len(personalisation)),
	}
	for key, value := range personalisation {
		normalized := NormalizeKey(key)
		c.values[normalized] = value
		c.original[normalized] = key
	}
	return c
}

// Get looks a value up by any spelling of its key.
func (c Columns) Get(key string) (any, bool) {
	value, ok := c.values[NormalizeKey(key)]
	return value, ok
}

// Contains reports whether any spelling of key has a value.
func (c Columns) Contains(key string) bool {
	_, ok := c.values[NormalizeKey(key)]
	return ok
}

// Len returns the number of distinct normalized keys.
func (c Columns) Len() int {
	return len(c.values)
}

// Keys returns the normalized keys in sorted order.
func (c Columns) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for key := range c.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// OriginalKey returns the spelling the key first arrived with.
func (c Columns) OriginalKey(key string) string {
	if original, ok := c.original[NormalizeKey(key)]; ok {
		return original
	}
	return key
}
