package render

import "testing"

func TestMarkupHelpers(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{OpenTag("code"), "&#91;code&#93;"},
		{CloseTag("code"), "&#91;/code&#93;"},
		{OpenTagParam("url", "a"), `&#91;url="a"&#93;`},
		{Bold("hi"), "&#91;b&#93;hi&#91;/b&#93;"},
		{URL("http://x"), `&#91;url="http://x"&#93;http://x&#91;/url&#93;`},
		{Escape("[b]bold[/b]"), "&#91;b&#93;bold&#91;/b&#93;"},
		{Escape("no brackets here"), "no brackets here"},
		{OpenTagParam("url", `a"b`), `&#91;url="a&quot;b"&#93;`},
		{URL(`http://x/?q="hi"`), `&#91;url="http://x/?q=&quot;hi&quot;"&#93;http://x/?q="hi"&#91;/url&#93;`},
	}

	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("Expected %q, got %q", tc.want, tc.got)
		}
	}
}
