package grid

import "sort"

// SpacingEntry is one row of a width-indexed spacing table: spacing
// required when the conductor width is at least MinWidth.
type SpacingEntry struct {
	MinWidth float64
	Spacing  float64
}

// SpacingTable is a layer's spacing rule, possibly keyed on conductor
// width. A table with a single entry behaves
// as a flat minimum spacing.
type SpacingTable []SpacingEntry

// For returns the spacing required for a conductor of the given width,
// picking the tightest (largest MinWidth not exceeding width) entry, or
// the smallest entry's spacing if width undercuts every row.
func (t SpacingTable) For(width float64) float64 {
	if len(t) == 0 {
		return 0
	}
	sorted := make(SpacingTable, len(t))
	copy(sorted, t)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinWidth < sorted[j].MinWidth })

	best := sorted[0].Spacing
	for _, e := range sorted {
		if width >= e.MinWidth {
			best = e.Spacing
		}
	}
	return best
}

// Layer describes one routing layer: its preferred direction, pitch,
// minimum width, spacing rule, and offset.
type Layer struct {
	Index      int
	Name       string
	Dir        LayerDir
	PitchX     float64
	PitchY     float64
	MinWidth   float64
	Spacing    SpacingTable
	OffsetX    float64
	OffsetY    float64
	KeepOut    float64 // halo used to classify extended taps
}
