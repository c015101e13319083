package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveListingGlobals(t *testing.T) {
	t.Helper()

	originalProfilesDir := profilesDir
	originalCategory := profilesCategory
	originalProfilesOutput := profilesOutput
	originalInfoOutput := infoOutput
	originalCategoriesOutput := categoriesOutput

	t.Cleanup(func() {
		profilesDir = originalProfilesDir
		profilesCategory = originalCategory
		profilesOutput = originalProfilesOutput
		infoOutput = originalInfoOutput
		categoriesOutput = originalCategoriesOutput
	})
}

func TestRunProfilesAction_ListsProfiles(t *testing.T) {
	saveListingGlobals(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pair_default.json"), []byte(cleanProfileJSON), 0o644))
	profilesDir = dir

	outPath := filepath.Join(t.TempDir(), "out.txt")
	profilesOutput = DefaultCommonOptions()
	profilesOutput.Output = outPath

	require.NoError(t, runProfilesAction())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "PROFILE")
	assert.Contains(t, out, "pair_default")
	assert.Contains(t, out, "Pair")
}

func TestRunProfilesAction_SkipsUnreadable(t *testing.T) {
	saveListingGlobals(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pair_default.json"), []byte(cleanProfileJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken_default.json"), []byte("{"), 0o644))
	profilesDir = dir

	outPath := filepath.Join(t.TempDir(), "out.txt")
	profilesOutput = DefaultCommonOptions()
	profilesOutput.Output = outPath

	require.NoError(t, runProfilesAction())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "pair_default")
	assert.NotContains(t, out, "broken_default")
}

func TestRunProfilesAction_CategoryFilter(t *testing.T) {
	saveListingGlobals(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene_default.json"), []byte(cleanProfileJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mood_default.json"), []byte(cleanProfileJSON), 0o644))
	profilesDir = dir

	outPath := filepath.Join(t.TempDir(), "out.txt")
	profilesCategory = "scene"
	profilesOutput = DefaultCommonOptions()
	profilesOutput.Output = outPath

	require.NoError(t, runProfilesAction())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "scene_default")
	assert.NotContains(t, out, "mood_default")
}

func TestRunProfilesAction_UnknownCategory(t *testing.T) {
	saveListingGlobals(t)

	profilesDir = t.TempDir()
	profilesCategory = "weather"
	profilesOutput = DefaultCommonOptions()

	err := runProfilesAction()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category: weather")
}

func TestRunInfoAction(t *testing.T) {
	saveListingGlobals(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pair_default.json"), []byte(cleanProfileJSON), 0o644))
	profilesDir = dir

	outPath := filepath.Join(t.TempDir(), "out.txt")
	infoOutput = DefaultCommonOptions()
	infoOutput.Output = outPath

	require.NoError(t, runInfoAction("pair_default"))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "Profile: Pair")
	assert.Contains(t, out, "a: 2 entries")
	assert.Contains(t, out, "templates: 1 variations")
	assert.Contains(t, out, "Total unique prompts: 4")
}

func TestRunInfoAction_MissingProfile(t *testing.T) {
	saveListingGlobals(t)

	profilesDir = t.TempDir()
	infoOutput = DefaultCommonOptions()

	err := runInfoAction("ghost_default")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load profile")
}

func TestRunCategoriesAction(t *testing.T) {
	saveListingGlobals(t)

	outPath := filepath.Join(t.TempDir(), "out.txt")
	categoriesOutput = DefaultCommonOptions()
	categoriesOutput.Output = outPath

	require.NoError(t, runCategoriesAction())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "scene (Scene)")
	assert.Contains(t, out, "subject_description (Subject Description)")
	assert.Contains(t, out, "Default profile: scene_default")
}
