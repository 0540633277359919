package food

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minFallbackTokenLen is the rune length a word must exceed before the
// token fallback tries to resolve it on its own.
const minFallbackTokenLen = 3

// Resolver maps free text onto canonical catalog names.
type Resolver struct {
	catalog  *Catalog
	patterns []*regexp.Regexp
}

// NewResolver precompiles a whole-word matcher for every catalog name
func NewResolver(catalog *Catalog) *Resolver {
	patterns := make([]*regexp.Regexp, len(catalog.entries))
	for i, e := range catalog.entries {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(e.Name) + `\b`)
	}
	return &Resolver{catalog: catalog, patterns: patterns}
}

// Catalog returns the catalog the resolver reads from
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Resolve returns the canonical names of every food mentioned in text, in
// catalog order and without duplicates. Whole-word matches are tried first;
// when none are found each word longer than three characters is resolved
// with FindFood.
func (r *Resolver) Resolve(text string) []string {
	normalized := strings.ToLower(text)
	if strings.TrimSpace(normalized) == "" {
		return []string{}
	}

	if found := r.scan(normalized); len(found) > 0 {
		return found
	}

	found := []string{}
	seen := make(map[string]struct{})
	for _, word := range strings.Fields(normalized) {
		if utf8.RuneCountInString(word) <= minFallbackTokenLen {
			continue
		}
		entry, ok := r.FindFood(word)
		if !ok {
			continue
		}
		if _, dup := seen[entry.Name]; dup {
			continue
		}
		seen[entry.Name] = struct{}{}
		found = append(found, entry.Name)
	}
	return found
}

// scan collects whole-word catalog matches. An occurrence that sits entirely
// inside an occurrence of a longer name ("rice" inside "brown rice") does not
// count on its own.
func (r *Resolver) scan(text string) []string {
	spans := make([][][]int, len(r.patterns))
	for i, re := range r.patterns {
		spans[i] = re.FindAllStringIndex(text, -1)
	}

	found := []string{}
	for i, occurrences := range spans {
		for _, occ := range occurrences {
			if !coveredByLonger(occ, i, spans) {
				found = append(found, r.catalog.entries[i].Name)
				break
			}
		}
	}
	return found
}

func coveredByLonger(occ []int, self int, spans [][][]int) bool {
	width := occ[1] - occ[0]
	for j, others := range spans {
		if j == self {
			continue
		}
		for _, other := range others {
			if other[1]-other[0] > width && other[0] <= occ[0] && occ[1] <= other[1] {
				return true
			}
		}
	}
	return false
}

// FindFood resolves a single candidate string to at most one catalog entry:
// exact name, then the name with one trailing "s" removed, then the first
// catalog name (in catalog order) that contains or is contained in the query.
func (r *Resolver) FindFood(query string) (Entry, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Entry{}, false
	}

	if e, ok := r.catalog.Lookup(q); ok {
		return e, true
	}

	if singular, ok := strings.CutSuffix(q, "s"); ok {
		if e, ok := r.catalog.Lookup(singular); ok {
			return e, true
		}
	}

	for _, e := range r.catalog.entries {
		if strings.Contains(e.Name, q) || strings.Contains(q, e.Name) {
			return e.clone(), true
		}
	}

	return Entry{}, false
}
