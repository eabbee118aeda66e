package view

// ToggleColumn enables or disables col in visible. Newly enabled columns are
// appended; disabling the only visible column is refused. The returned slice
// is a new slice and ok reports whether anything changed.
func ToggleColumn(visible []string, col string) (out []string, ok bool) {
	out = make([]string, 0, len(visible)+1)
	found := false
	for _, c := range visible {
		if c == col {
			found = true
			continue
		}
		out = append(out, c)
	}
	if !found {
		return append(out, col), true
	}
	if len(out) == 0 {
		return append(out, visible...), false
	}
	return out, true
}

// MoveColumn moves the column at idx by delta slots and returns the new
// order and the column's new index. Moves past either end are ignored.
func MoveColumn(cols []string, idx, delta int) ([]string, int) {
	out := append([]string(nil), cols...)
	target := idx + delta
	if idx < 0 || idx >= len(out) || target < 0 || target >= len(out) {
		return out, idx
	}
	out[idx], out[target] = out[target], out[idx]
	return out, target
}
