package profile

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Discover lists the profile ids available in dir, optionally restricted to
// ids starting with prefix. Results are sorted, except that the
// "{prefix}default" id sorts first when present so pickers can offer it as
// the initial choice.
func Discover(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read profiles directory %s: %w", dir, err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		if prefix != "" && !strings.HasPrefix(id, prefix) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	def := prefix + "default"
	for i, id := range ids {
		if id == def {
			copy(ids[1:i+1], ids[:i])
			ids[0] = def
			break
		}
	}
	return ids, nil
}
