package legacy

import "strings"

// migrationFuncs maps legacy filter names to the canonical-syntax functions
// that replace them during stored-content migration.
var migrationFuncs = map[string]string{
	"first_word":        "FIRST_WORD",
	"remove_first_word": "REMOVE_FIRST_WORD",
	"upper_case":        "UPPER",
	"lower_case":        "LOWER",
	"capitalize":        "PROPER",
	"title_case":        "PROPER",
}

// MigrateChain rewrites a resolved path and filter chain into a canonical
// new-syntax expression body, e.g. path "contact.name" with upper_case and
// capitalize becomes "PROPER(UPPER(contact.name))". The time_delta filter
// becomes date addition. Unknown filters are dropped, matching their no-op
// evaluation behavior.
func MigrateChain(path string, filters []Filter) string {
	expr := path
	for _, filter := range filters {
		if strings.EqualFold(filter.Name, "time_delta") {
			expr += " + " + filter.Arg
			continue
		}
		if fn, ok := migrationFuncs[strings.ToLower(filter.Name)]; ok {
			expr = fn + "(" + expr + ")"
		}
	}
	return expr
}
