package localize

import "testing"

// Ported verbatim from crates/processing/src/localization/template.rs's
// test_interpolate.
func TestInterpolate(t *testing.T) {
	subst := map[string]string{"foo": "bar", "fee": "baz"}

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"[%s:foo]", "bar"},
		{"[%s:foo] bar", "bar bar"},
		{"[%s:foo] [%s:fee]", "bar baz"},
		{"[%s:foo] [%s:foo]", "bar bar"},
		{"[%s:foo] [%s:fee] [%s:foo]", "bar baz bar"},
		{"[%s:unknown]", "<unknown>"},
		{"юникод [%s:foo] ок", "юникод bar ок"},
	}

	for _, c := range cases {
		if got := interpolate(c.in, subst); got != c.want {
			t.Errorf("interpolate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
