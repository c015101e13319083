package profile

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalJSON_PreservesPoolOrder(t *testing.T) {
	t.Parallel()

	// Declaration order differs from alphabetical on purpose.
	doc := `{
		"templates": ["{zeta} {alpha}"],
		"pools": {
			"zeta": ["z1"],
			"alpha": ["a1"],
			"mid": ["m1"],
			"beta": ["b1"]
		}
	}`

	var p Profile
	require.NoError(t, json.Unmarshal([]byte(doc), &p))

	names := make([]string, len(p.Pools))
	for i, pool := range p.Pools {
		names[i] = pool.Name
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid", "beta"}, names)
}

func TestUnmarshalJSON_KeepsDuplicateKeysForValidation(t *testing.T) {
	t.Parallel()

	doc := `{"templates": ["t"], "pools": {"a": ["x"], "a": ["y"]}}`

	var p Profile
	require.NoError(t, json.Unmarshal([]byte(doc), &p))
	require.Len(t, p.Pools, 2)

	err := p.Validate()
	require.Error(t, err)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Error(), "duplicate pool name")
}

func TestUnmarshalJSON_RejectsNonObjectPools(t *testing.T) {
	t.Parallel()

	var p Profile
	err := json.Unmarshal([]byte(`{"templates": ["t"], "pools": ["not", "an", "object"]}`), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pools must be an object")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile Profile
		wantErr string
	}{
		{
			name: "valid",
			profile: Profile{
				Templates: []string{"{a}"},
				Pools:     []Pool{{Name: "a", Values: []string{"x"}}},
			},
		},
		{
			name: "valid without pools",
			profile: Profile{
				Templates: []string{"static text"},
			},
		},
		{
			name:    "missing templates",
			profile: Profile{Pools: []Pool{{Name: "a", Values: []string{"x"}}}},
			wantErr: "at least one template is required",
		},
		{
			name:    "empty templates",
			profile: Profile{Templates: []string{}},
			wantErr: "at least one template is required",
		},
		{
			name: "empty pool",
			profile: Profile{
				Templates: []string{"t"},
				Pools:     []Pool{{Name: "a", Values: nil}},
			},
			wantErr: "pool must contain at least one value",
		},
		{
			name: "empty pool name",
			profile: Profile{
				Templates: []string{"t"},
				Pools:     []Pool{{Name: "", Values: []string{"x"}}},
			},
			wantErr: "pool name must not be empty",
		},
		{
			name: "duplicate pool names",
			profile: Profile{
				Templates: []string{"t"},
				Pools: []Pool{
					{Name: "a", Values: []string{"x"}},
					{Name: "a", Values: []string{"y"}},
				},
			},
			wantErr: "duplicate pool name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.profile.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_CollectsAllIssues(t *testing.T) {
	t.Parallel()

	p := Profile{
		Pools: []Pool{
			{Name: "a", Values: nil},
			{Name: "a", Values: []string{"x"}},
		},
	}

	err := p.Validate()
	require.Error(t, err)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Len(t, schemaErr.Issues, 3)
}

func TestCombinations(t *testing.T) {
	t.Parallel()

	p := Profile{
		Templates: []string{"a", "b", "c"},
		Pools: []Pool{
			{Name: "color", Values: make([]string, 4)},
			{Name: "beast", Values: make([]string, 3)},
			{Name: "place", Values: make([]string, 3)},
		},
	}
	assert.Equal(t, big.NewInt(108), p.Combinations())
}

func TestCombinations_NoPools(t *testing.T) {
	t.Parallel()

	p := Profile{Templates: []string{"a", "b"}}
	assert.Equal(t, big.NewInt(2), p.Combinations())
}

// Real profiles overflow int64; the count must stay exact past 2^63.
func TestCombinations_ExceedsInt64(t *testing.T) {
	t.Parallel()

	p := Profile{Templates: []string{"t"}}
	for i := 0; i < 25; i++ {
		p.Pools = append(p.Pools, Pool{
			Name:   string(rune('a' + i)),
			Values: make([]string, 6),
		})
	}

	want := new(big.Int).Exp(big.NewInt(6), big.NewInt(25), nil)
	got := p.Combinations()
	assert.Equal(t, 0, got.Cmp(want))
	assert.Equal(t, 1, got.Cmp(new(big.Int).SetUint64(1<<63)))
	assert.Equal(t, "28430288029929701376", got.String())
}

func TestMarshalJSON_RoundTripKeepsOrder(t *testing.T) {
	t.Parallel()

	original := Profile{
		Name:      "roundtrip",
		Templates: []string{"{z} {a}"},
		Pools: []Pool{
			{Name: "z", Values: []string{"1"}},
			{Name: "a", Values: []string{"2"}},
		},
	}

	data, err := json.Marshal(&original)
	require.NoError(t, err)

	var decoded Profile
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}
