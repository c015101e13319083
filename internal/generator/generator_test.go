package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptloom-dev/promptloom/internal/profile"
)

func pairProfile() *profile.Profile {
	return &profile.Profile{
		Templates: []string{"{a} and {b}"},
		Pools: []profile.Pool{
			{Name: "a", Values: []string{"x", "y"}},
			{Name: "b", Values: []string{"p", "q"}},
		},
	}
}

func wildsTestProfile() *profile.Profile {
	return &profile.Profile{
		Name: "Wilds",
		Templates: []string{
			"A {color} {beast}",
			"the {beast} of {place}",
			"{color} skies over {place}",
		},
		Pools: []profile.Pool{
			{Name: "color", Values: []string{"crimson", "azure", "golden", "violet"}},
			{Name: "beast", Values: []string{"wolf", "drake", "heron"}},
			{Name: "place", Values: []string{"Meridia", "the Saltfen", "Karthal"}},
		},
	}
}

func TestGenerate_KnownOutputs(t *testing.T) {
	t.Parallel()

	pair := pairProfile()
	wilds := wildsTestProfile()

	tests := []struct {
		name    string
		profile *profile.Profile
		seed    uint32
		index   int32
		want    string
	}{
		{"pair seed1 idx0", pair, 1, 0, "x and p"},
		{"pair seed1 idx1", pair, 1, 1, "y and p"},
		{"pair seed1 idx2", pair, 1, 2, "x and q"},
		{"pair seed1 idx3", pair, 1, 3, "x and p"},
		{"pair seed1 idx4", pair, 1, 4, "x and q"},
		{"pair seed1 idx5", pair, 1, 5, "x and p"},
		{"pair seed2 idx0", pair, 2, 0, "y and p"},
		{"wilds seed0 idx0", wilds, 0, 0, "crimson skies over Meridia"},
		{"wilds seed0 idx1", wilds, 0, 1, "A azure drake"},
		{"wilds seed0 idx2", wilds, 0, 2, "violet skies over Karthal"},
		{"wilds seed7 idx0", wilds, 7, 0, "the drake of Karthal"},
		{"wilds seed7 idx41", wilds, 7, 41, "A golden drake"},
		{"wilds seed99 idx1000", wilds, 99, 1000, "A crimson wolf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Generate(tt.profile, tt.seed, tt.index)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Text)
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	p := wildsTestProfile()
	for idx := int32(0); idx < 50; idx++ {
		first, err := Generate(p, 1234, idx)
		require.NoError(t, err)
		second, err := Generate(p, 1234, idx)
		require.NoError(t, err)
		assert.Equal(t, first, second, "index %d", idx)
	}
}

func TestGenerate_PickTrace(t *testing.T) {
	t.Parallel()

	got, err := Generate(pairProfile(), 1, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, got.Template)
	assert.Equal(t, []Pick{{Pool: "a", Value: "x"}, {Pool: "b", Value: "p"}}, got.Picks)
	assert.False(t, got.Fallback)
}

func TestGenerate_UnknownPlaceholderFallsBack(t *testing.T) {
	t.Parallel()

	p := wildsTestProfile()
	p.Templates = []string{"{color} {missing} {beast}"}

	tests := []struct {
		index int32
		want  string
	}{
		{0, "crimson {missing} heron"},
		{1, "crimson {missing} wolf"},
		{2, "violet {missing} heron"},
	}
	for _, tt := range tests {
		got, err := Generate(p, 5, tt.index)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Text, "index %d", tt.index)
		assert.True(t, got.Fallback, "index %d", tt.index)
	}
}

// Pools the template never references still consume their coordinate slot, so
// the same text can repeat at consecutive indices while the hidden picks
// differ.
func TestGenerate_EveryPoolAlwaysEvaluated(t *testing.T) {
	t.Parallel()

	p := wildsTestProfile()
	p.Templates = []string{"only {color}"}

	first, err := Generate(p, 3, 0)
	require.NoError(t, err)
	second, err := Generate(p, 3, 1)
	require.NoError(t, err)

	assert.Equal(t, "only crimson", first.Text)
	assert.Equal(t, "only crimson", second.Text)
	require.Len(t, first.Picks, 3)
	assert.NotEqual(t, first.Picks, second.Picks)
}

func TestGenerate_PrefixSuffix(t *testing.T) {
	t.Parallel()

	got, err := Generate(pairProfile(), 1, 0, WithPrefix("<< "), WithSuffix(" >>"))
	require.NoError(t, err)
	assert.Equal(t, "<< x and p >>", got.Text)

	plain, err := Generate(pairProfile(), 1, 0, WithPrefix(""), WithSuffix(""))
	require.NoError(t, err)
	assert.Equal(t, "x and p", plain.Text)
}

func TestGenerate_NegativeIndex(t *testing.T) {
	t.Parallel()

	// Negative indices are valid coordinates, just rarely used.
	got, err := Generate(pairProfile(), 1, -1)
	require.NoError(t, err)
	repeat, err := Generate(pairProfile(), 1, -1)
	require.NoError(t, err)
	assert.Equal(t, got.Text, repeat.Text)
	assert.NotEmpty(t, got.Text)
}

func TestGenerate_InvalidProfile(t *testing.T) {
	t.Parallel()

	bad := &profile.Profile{
		Templates: []string{"{a}"},
		Pools:     []profile.Pool{{Name: "a", Values: nil}},
	}
	_, err := Generate(bad, 0, 0)
	require.Error(t, err)

	var schemaErr *profile.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestRender_BracesWithoutNames(t *testing.T) {
	t.Parallel()

	picks := []Pick{{Pool: "a", Value: "x"}}

	tests := []struct {
		name     string
		template string
		want     string
		fallback bool
	}{
		{"empty braces are literal", "{} {a}", "{} x", false},
		{"spaced braces are literal", "{a b} {a}", "{a b} x", false},
		{"lone open brace", "{ {a}", "{ x", false},
		{"no placeholders", "plain text", "plain text", false},
		{"unknown name", "{zzz} {a}", "{zzz} x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, fellBack := render(tt.template, picks)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.fallback, fellBack)
		})
	}
}
