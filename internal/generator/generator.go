// Package generator turns a seed, an index and a profile into text. Every
// choice is positional: slot 0 picks the template, slot i+1 picks from pool i,
// and all pools are consumed on every call whether or not the template uses
// them, so the output space is the full cross product and two renders of the
// same coordinates can never disagree.
package generator

import (
	"regexp"
	"strings"

	"github.com/promptloom-dev/promptloom/internal/profile"
	"github.com/promptloom-dev/promptloom/internal/seed"
)

// placeholderPattern matches {name} references in templates. Braces around
// anything else are plain text.
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Pick records one pool selection made during generation.
type Pick struct {
	Pool  string `json:"pool"`
	Value string `json:"value"`
}

// Result is one generated prompt plus the trace of how it was assembled.
type Result struct {
	Text     string `json:"text"`
	Template int    `json:"template"`
	Picks    []Pick `json:"picks,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Option adjusts a single generation.
type Option func(*renderConfig)

type renderConfig struct {
	prefix string
	suffix string
}

// WithPrefix prepends s to the generated text. Empty adds nothing.
func WithPrefix(s string) Option {
	return func(c *renderConfig) { c.prefix = s }
}

// WithSuffix appends s to the generated text. Empty adds nothing.
func WithSuffix(s string) Option {
	return func(c *renderConfig) { c.suffix = s }
}

// Generate renders the prompt at (seedValue, index). The profile is validated
// first so a malformed document fails loudly instead of producing garbage.
func Generate(p *profile.Profile, seedValue uint32, index int32, opts ...Option) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	var cfg renderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return generate(p, seedValue, index, cfg), nil
}

// generate assumes a validated profile. Batch validates once up front and
// calls this per index.
func generate(p *profile.Profile, seedValue uint32, index int32, cfg renderConfig) Result {
	templateIdx := seed.Index(seed.Hash(seedValue, index, 0), len(p.Templates))
	template := p.Templates[templateIdx]

	picks := make([]Pick, len(p.Pools))
	for i, pool := range p.Pools {
		h := seed.Hash(seedValue, index, int32(i+1))
		picks[i] = Pick{
			Pool:  pool.Name,
			Value: pool.Values[seed.Index(h, len(pool.Values))],
		}
	}

	text, fellBack := render(template, picks)
	return Result{
		Text:     cfg.prefix + text + cfg.suffix,
		Template: templateIdx,
		Picks:    picks,
		Fallback: fellBack,
	}
}

// render substitutes picks into the template. The primary pass splices every
// placeholder in one sweep; it only applies when all referenced names are
// known pools. Otherwise the fallback re-renders from the original template,
// replacing each known pool in declaration order and leaving unknown
// placeholders literally in place.
func render(template string, picks []Pick) (string, bool) {
	known := make(map[string]string, len(picks))
	for _, pk := range picks {
		known[pk.Pool] = pk.Value
	}

	complete := true
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if _, ok := known[m[1]]; !ok {
			complete = false
			break
		}
	}

	if complete {
		out := placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
			return known[m[1:len(m)-1]]
		})
		return out, false
	}

	out := template
	for _, pk := range picks {
		out = strings.ReplaceAll(out, "{"+pk.Pool+"}", pk.Value)
	}
	return out, true
}
