package scoring

import "golang.org/x/text/cases"

// genderFold case-folds a gender alias - locale-independent, unlike
// strings.ToLower, which mishandles a handful of non-ASCII letters (Turkish
// dotless i is the classic case). The gender aliases in spec §3 are
// ASCII-only today, but profile data is free text from upstream providers.
var fold = cases.Fold()

func genderFold(s string) string {
	return fold.String(s)
}
