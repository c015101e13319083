package generator

import (
	"strings"
	"testing"
)

// FuzzRender throws arbitrary templates at the renderer with a fixed pick set
// and checks the invariants both render paths share.
func FuzzRender(f *testing.F) {
	seeds := []string{
		"{a} and {b}",
		"no placeholders",
		"{missing} {a}",
		"",
		"{",
		"}{",
		"{{a}}",
		"{a b}",
		"{a}{a}{a}",
		"{a_1} {B} {a}",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	picks := []Pick{
		{Pool: "a", Value: "x"},
		{Pool: "b", Value: "y"},
	}

	f.Fuzz(func(t *testing.T, template string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("PANIC on template %q: %v", template, r)
			}
		}()

		out, fellBack := render(template, picks)
		again, fellBackAgain := render(template, picks)

		if out != again || fellBack != fellBackAgain {
			t.Errorf("render not deterministic for %q: %q/%v vs %q/%v",
				template, out, fellBack, again, fellBackAgain)
		}

		// Every literal {a} / {b} occurrence is replaced on both paths.
		if strings.Contains(out, "{a}") || strings.Contains(out, "{b}") {
			t.Errorf("known placeholder survived render of %q: %q", template, out)
		}

		// Templates without braces pass through untouched.
		if !strings.ContainsAny(template, "{}") && out != template {
			t.Errorf("plain template %q changed to %q", template, out)
		}
	})
}
