package catalog

import "strings"

// matchesTerms reports whether every term is a substring of the lowercased
// haystack.  Terms are expected to be lowercase already.
func matchesTerms(haystack string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}

// SearchServices narrows items to those matching the free-text query.  The
// query is lowercased and split on whitespace; an item matches only when
// every term appears in the lowercased concatenation of its name,
// description and category.  An empty or whitespace-only query returns the
// input slice untouched, preserving its order.
func SearchServices(query string, items []Service) []Service {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return items
	}
	out := make([]Service, 0, len(items))
	for _, s := range items {
		hay := strings.ToLower(s.Name + " " + s.Description + " " + s.Category)
		if matchesTerms(hay, terms) {
			out = append(out, s)
		}
	}
	return out
}

// SearchStylists is the stylist counterpart of SearchServices; the
// searchable text is the name plus the joined specialties.
func SearchStylists(query string, items []Stylist) []Stylist {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return items
	}
	out := make([]Stylist, 0, len(items))
	for _, s := range items {
		hay := strings.ToLower(s.Name + " " + strings.Join(s.Specialties, " "))
		if matchesTerms(hay, terms) {
			out = append(out, s)
		}
	}
	return out
}
