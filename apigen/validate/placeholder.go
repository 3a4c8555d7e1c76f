package validate

import "regexp"

// placeholderPattern matches every maximal {...} region containing no
// nested braces — spec.md §4.3's placeholder-extraction rule, and the only
// piece of this package built on a regular expression rather than a
// dedicated parser (see DESIGN.md's stdlib justification for this file).
var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// ExtractPlaceholders returns every placeholder key in template, in the
// order they appear, including duplicates. Extraction is idempotent
// (running it again over the extracted keys themselves, which contain no
// braces, yields nothing) and template concatenation distributes over it:
// ExtractPlaceholders(a+b) == append(ExtractPlaceholders(a), ExtractPlaceholders(b)...).
func ExtractPlaceholders(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	if len(matches) == 0 {
		return nil
	}
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		keys = append(keys, m[1])
	}
	return keys
}

// PlaceholderSet returns the distinct placeholder keys in template.
func PlaceholderSet(template string) map[string]bool {
	set := make(map[string]bool)
	for _, k := range ExtractPlaceholders(template) {
		set[k] = true
	}
	return set
}
