// Package categories maps between internal category keys and the display
// names users see.
//
// The table is fixed. Both directions pass unknown values through unchanged
// so that a naming mismatch between stored transactions and stored budget
// allocations can never drop a category from a report.
package categories

import "strings"

type mapping struct {
	key     string
	display string
}

// table is ordered. The order is the canonical category order used by
// report consumers that want a stable, table-driven sort.
var table = []mapping{
	{"food", "Food & Dining"},
	{"shopping", "Shopping"},
	{"housing", "Housing"},
	{"transportation", "Transportation"},
	{"entertainment", "Entertainment"},
	{"utilities", "Utilities"},
	{"income", "Income"},
	{"other", "Other"},
}

var (
	byKey     = make(map[string]string, len(table))
	byDisplay = make(map[string]string, len(table))
)

func init() {
	for _, m := range table {
		byKey[m.key] = m.display
		// Reverse lookups are case-insensitive on the display name
		byDisplay[strings.ToLower(m.display)] = m.key
	}
}

// ToDisplayName returns the display name for an internal category key.
// Unknown keys are returned unchanged.
func ToDisplayName(key string) string {
	if display, ok := byKey[key]; ok {
		return display
	}

	return key
}

// ToInternalKey returns the internal category key for a display name.
// Unknown display names are returned unchanged.
func ToInternalKey(display string) string {
	if key, ok := byDisplay[strings.ToLower(display)]; ok {
		return key
	}

	return display
}

// Keys returns all internal category keys in table order.
func Keys() []string {
	keys := make([]string, 0, len(table))
	for _, m := range table {
		keys = append(keys, m.key)
	}

	return keys
}

// DisplayNames returns all display names in table order.
func DisplayNames() []string {
	names := make([]string, 0, len(table))
	for _, m := range table {
		names = append(names, m.display)
	}

	return names
}

// Position returns the position of a display name in the fixed table.
// Unknown names sort after all known ones.
func Position(display string) int {
	for i, m := range table {
		if m.display == display {
			return i
		}
	}

	return len(table)
}
