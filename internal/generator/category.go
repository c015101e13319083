package generator

import (
	"fmt"
	"sort"
	"strings"
)

// Filter is a cosmetic selector attached to a category. Filter values are
// validated against the declared choices and recorded alongside results, but
// they do not influence selection; generation stays a pure function of
// (seed, index, profile).
type Filter struct {
	Name    string   `json:"name"`
	Choices []string `json:"choices"`
}

// Category groups the profiles of one generation concern under a shared
// profile-id prefix. All categories share the same behavior; they differ only
// in this record.
type Category struct {
	Name           string   `json:"name"`
	Title          string   `json:"title"`
	Prefix         string   `json:"prefix"`
	DefaultProfile string   `json:"default_profile"`
	Filters        []Filter `json:"filters,omitempty"`
}

var filterAny = "any"

var categories = []Category{
	{
		Name: "subject_description", Title: "Subject Description",
		Prefix: "subject_description_", DefaultProfile: "subject_description_default",
		Filters: []Filter{{
			Name:    "subject_type",
			Choices: []string{"any", "person", "character", "object", "creature", "vehicle", "architecture"},
		}},
	},
	{
		Name: "subject_position", Title: "Subject Position",
		Prefix: "subject_position_", DefaultProfile: "subject_position_default",
	},
	{
		Name: "subject_action", Title: "Subject Action",
		Prefix: "subject_action_", DefaultProfile: "subject_action_default",
		Filters: []Filter{{
			Name:    "action_intensity",
			Choices: []string{"any", "subtle", "moderate", "dynamic", "extreme"},
		}},
	},
	{
		Name: "subject_pose", Title: "Subject Pose",
		Prefix: "subject_pose_", DefaultProfile: "subject_pose_default",
	},
	{
		Name: "scene", Title: "Scene",
		Prefix: "scene_", DefaultProfile: "scene_default",
		Filters: []Filter{
			{
				Name:    "scene_category",
				Choices: []string{"any", "interior", "exterior", "studio", "natural", "urban", "fantasy", "scifi"},
			},
			{
				Name:    "time_hint",
				Choices: []string{"any", "day", "night", "dawn", "dusk", "golden_hour", "blue_hour"},
			},
		},
	},
	{
		Name: "background", Title: "Background",
		Prefix: "background_", DefaultProfile: "background_default",
	},
	{
		Name: "style", Title: "Style",
		Prefix: "style_", DefaultProfile: "style_default",
	},
	{
		Name: "mood", Title: "Mood",
		Prefix: "mood_", DefaultProfile: "mood_default",
	},
	{
		Name: "lighting", Title: "Lighting",
		Prefix: "lighting_", DefaultProfile: "lighting_default",
	},
	{
		Name: "camera_angle", Title: "Camera Angle",
		Prefix: "camera_angle_", DefaultProfile: "camera_angle_default",
		Filters: []Filter{{
			Name:    "angle_type",
			Choices: []string{"any", "eye_level", "high", "low", "birds_eye", "worms_eye", "dutch"},
		}},
	},
	{
		Name: "camera_distance", Title: "Camera Distance",
		Prefix: "camera_distance_", DefaultProfile: "camera_distance_default",
	},
	{
		Name: "camera_dof", Title: "Camera Depth of Field",
		Prefix: "camera_dof_", DefaultProfile: "camera_dof_default",
	},
	{
		Name: "camera_focus", Title: "Camera Focus",
		Prefix: "camera_focus_", DefaultProfile: "camera_focus_default",
	},
	{
		Name: "composition", Title: "Composition",
		Prefix: "composition_", DefaultProfile: "composition_default",
	},
}

// Categories returns the registry in its canonical order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByName looks up a category by its snake_case name.
func CategoryByName(name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryForProfile resolves the category a profile id belongs to by its
// id prefix. Ids outside every category, such as the bare default profile,
// report false.
func CategoryForProfile(profileID string) (Category, bool) {
	for _, c := range categories {
		if strings.HasPrefix(profileID, c.Prefix) {
			return c, true
		}
	}
	return Category{}, false
}

// ValidateFilters checks the given filter values against the category's
// declared filters. Unknown names and undeclared choices are rejected.
func (c Category) ValidateFilters(values map[string]string) error {
	byName := make(map[string]Filter, len(c.Filters))
	for _, f := range c.Filters {
		byName[f.Name] = f
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f, ok := byName[name]
		if !ok {
			return fmt.Errorf("category %s has no filter %q", c.Name, name)
		}
		value := values[name]
		if value == "" || value == filterAny {
			continue
		}
		valid := false
		for _, choice := range f.Choices {
			if choice == value {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("filter %s: %q is not one of %v", name, value, f.Choices)
		}
	}
	return nil
}
