package localize

import "regexp"

// placeholder matches "[%s:name]" tokens inside a translation template.
//
// The original's regex char class was `[a-zA-z]`, a typo: the `A-z` range
// also admits the punctuation between 'Z' and 'a' ([, \, ], ^, _ and `), so
// a name like "foo_bar" matched there and does not match here. Every real key
// name (all lowercase or the one "Token"-style camelCase we use) matches
// both, so this uses `[a-zA-Z]`.
var placeholder = regexp.MustCompile(`\[%s:([a-zA-Z]+)\]`)

// interpolate substitutes every "[%s:name]" token in s with subst[name], or
// "<name>" if name is not in subst (src/lib/localization/template.rs).
func interpolate(s string, subst map[string]string) string {
	return placeholder.ReplaceAllStringFunc(s, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		if v, ok := subst[name]; ok {
			return v
		}
		return "<" + name + ">"
	})
}
