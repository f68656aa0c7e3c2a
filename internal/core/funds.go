package core

// FundsByLevel filters funds to one display tier, preserving order.
func FundsByLevel(funds []Fund, level int) []Fund {
	out := make([]Fund, 0, len(funds))
	for _, f := range funds {
		if f.Level == level {
			out = append(out, f)
		}
	}
	return out
}

// ResolveCategories resolves a fund's category associations against the
// category list. Canonical rows reference categories by id; legacy rows
// carried names instead, so name matching remains as a compatibility shim
// until ingestion has rewritten every row (see storage.normalizeFundCategories).
func ResolveCategories(f Fund, categories []Category) []Category {
	byID := make(map[int64]bool, len(f.CategoryIDs))
	for _, id := range f.CategoryIDs {
		byID[id] = true
	}
	byName := make(map[string]bool, len(f.CategoryNames))
	for _, n := range f.CategoryNames {
		byName[n] = true
	}

	var resolved []Category
	for _, c := range categories {
		if byID[c.ID] || byName[c.Name] {
			resolved = append(resolved, c)
		}
	}
	return resolved
}
