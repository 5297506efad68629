package notion

import (
	"sort"

	"github.com/jomei/notionapi"
)

// RequiredProperties are the property names the target database must declare
// before any page is written into it. The check runs up front because a
// malformed page-create request fails with an error that is hard to trace
// back to the missing column.
var RequiredProperties = []string{"Name", "Image", "URL", "Tags"}

// HasRequiredProperties reports whether the database declares every required
// property name. Matching is case-sensitive and exact.
func HasRequiredProperties(db *notionapi.Database) bool {
	for _, name := range RequiredProperties {
		if _, ok := db.Properties[name]; !ok {
			return false
		}
	}
	return true
}

// PropertyNames returns the database's declared property names, sorted so the
// schema-mismatch message is stable.
func PropertyNames(db *notionapi.Database) []string {
	names := make([]string, 0, len(db.Properties))
	for name := range db.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
