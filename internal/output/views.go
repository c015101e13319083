package output

import (
	"fmt"

	"github.com/promptloom-dev/promptloom/internal/generator"
	"github.com/promptloom-dev/promptloom/internal/profile"
	"github.com/promptloom-dev/promptloom/internal/seed"
)

// GenerateView is the renderable form of a single generation. It pairs the
// rendered text with the coordinates that produced it so a run can be
// reproduced exactly.
type GenerateView struct {
	ProfileID string           `json:"profile"`
	Seed      uint32           `json:"seed"`
	Index     int32            `json:"index"`
	Text      string           `json:"text"`
	Template  int              `json:"template"`
	Picks     []generator.Pick `json:"picks,omitempty"`
	Fallback  bool             `json:"fallback,omitempty"`
}

// NewGenerateView builds a GenerateView from a generation result.
func NewGenerateView(profileID string, seedValue uint32, index int32, res generator.Result) GenerateView {
	return GenerateView{
		ProfileID: profileID,
		Seed:      seedValue,
		Index:     index,
		Text:      res.Text,
		Template:  res.Template,
		Picks:     res.Picks,
		Fallback:  res.Fallback,
	}
}

// ProfileSummary is one row of a profile listing.
type ProfileSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Version      string `json:"version,omitempty"`
	Templates    int    `json:"templates"`
	Pools        int    `json:"pools"`
	Combinations string `json:"combinations"`
}

// NewProfileSummary builds a listing row for a loaded profile. Profiles
// without a name fall back to their file id.
func NewProfileSummary(id string, p *profile.Profile) ProfileSummary {
	name := p.Name
	if name == "" {
		name = id
	}
	return ProfileSummary{
		ID:           id,
		Name:         name,
		Version:      p.Version,
		Templates:    len(p.Templates),
		Pools:        len(p.Pools),
		Combinations: p.Combinations().String(),
	}
}

// MixView is the renderable form of a seed mix.
type MixView struct {
	Inputs []uint32 `json:"inputs"`
	Mixed  uint32   `json:"mixed"`
	Hex    string   `json:"hex"`
}

// NewMixView folds four seed components into one derived seed.
func NewMixView(a, b, c, d uint32) MixView {
	mixed := seed.Mix(a, b, c, d)
	return MixView{
		Inputs: []uint32{a, b, c, d},
		Mixed:  mixed,
		Hex:    fmt.Sprintf("0x%08X", mixed),
	}
}
