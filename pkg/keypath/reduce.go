package keypath

import (
	"sort"
	"strings"
)

// Reduce removes paths contained within another path of the set, and
// collapses duplicates. Given ["HKLM\A", "HKLM\A\B"] only "HKLM\A"
// survives: the deeper path is already covered by its ancestor.
func Reduce(paths []KeyPath) []KeyPath {
	sorted := make([]KeyPath, len(paths))
	copy(sorted, paths)
	// Shorter paths first so ancestors are kept before their descendants
	// are considered.
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i].parts) != len(sorted[j].parts) {
			return len(sorted[i].parts) < len(sorted[j].parts)
		}
		return strings.Compare(sorted[i].fold(), sorted[j].fold()) < 0
	})

	out := make([]KeyPath, 0, len(sorted))
	for _, p := range sorted {
		contained := false
		for _, kept := range out {
			if kept.ContainsOrEqual(p) {
				contained = true
				break
			}
		}
		if !contained {
			out = append(out, p)
		}
	}
	return out
}
