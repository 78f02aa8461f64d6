// internal/app/system/htmlsanitize/htmlsanitize_test.go
package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/system/htmlsanitize"
)

func TestSanitize_StripsScripts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "script tag in a description",
			in:   `<p>All welcome</p><script>alert("x")</script>`,
			want: "<p>All welcome</p>",
		},
		{
			name: "event handler attribute",
			in:   `<p onclick="steal()">Spring Open</p>`,
			want: "<p>Spring Open</p>",
		},
		{
			name: "javascript href",
			in:   `<a href="javascript:alert(1)">rules</a>`,
			want: "rules",
		},
		{
			name: "iframe",
			in:   `<iframe src="https://evil.example"></iframe>sign up below`,
			want: "sign up below",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitize_KeepsEventFormatting(t *testing.T) {
	// The markup the event editor produces must survive.
	tests := []string{
		"<p><strong>Round 1</strong> starts at <em>9am</em></p>",
		"<ul><li>Bring your own board</li><li>Clocks provided</li></ul>",
		"<h2>Prizes</h2><p><u>Cash</u> and <mark>trophies</mark></p>",
		"<p>E=mc<sup>2</sup> and H<sub>2</sub>O</p>",
		"<pre><code>1. e4 e5</code></pre>",
		"<blockquote>Play fair.</blockquote>",
	}
	for _, in := range tests {
		if got := htmlsanitize.Sanitize(in); got != in {
			t.Errorf("Sanitize(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestSanitize_KeepsTables(t *testing.T) {
	in := `<table class="pairings" style="width:100%"><thead><tr><th>Board</th><th>White</th></tr></thead>` +
		`<tbody><tr><td style="text-align:center">1</td><td>Alice</td></tr></tbody></table>`
	got := htmlsanitize.Sanitize(in)

	for _, want := range []string{"<table", "<thead>", "<tbody>", "<th>", "<td", `class="pairings"`, "width", "text-align"} {
		if !strings.Contains(got, want) {
			t.Errorf("sanitized table lost %q: %q", want, got)
		}
	}
}

func TestSanitize_DropsDisallowedStyles(t *testing.T) {
	in := `<td style="text-align: center; position: fixed">1</td>`
	got := htmlsanitize.Sanitize(in)
	if strings.Contains(got, "position") {
		t.Errorf("disallowed style property survived: %q", got)
	}
	if !strings.Contains(got, "text-align") {
		t.Errorf("allowed style property lost: %q", got)
	}
}

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q", got)
	}
}
