package grid_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/qrouter/grid"
)

func twoLayerGrid() *grid.Grid {
	layers := []grid.Layer{
		{Index: 0, Name: "M1", Dir: grid.Horizontal, PitchX: 1, PitchY: 1, MinWidth: 0.1,
			Spacing: grid.SpacingTable{{MinWidth: 0, Spacing: 0.1}}},
		{Index: 1, Name: "M2", Dir: grid.Vertical, PitchX: 1, PitchY: 1, MinWidth: 0.1,
			Spacing: grid.SpacingTable{{MinWidth: 0, Spacing: 0.1}}},
	}
	return grid.New(layers, 0, 0, []int{20, 20}, []int{20, 20}, 2, nil)
}

var _ = Describe("Grid", func() {
	It("maps grid coordinates to physical positions", func() {
		g := twoLayerGrid()
		x, y := g.Physical(grid.Coord{X: 3, Y: 4, L: 0})
		Expect(x).To(Equal(3.0))
		Expect(y).To(Equal(4.0))
	})

	It("looks up and mutates a cell in place", func() {
		g := twoLayerGrid()
		c := grid.Coord{X: 1, Y: 1, L: 0}
		cell := g.Lookup(c)
		Expect(cell.Owner).To(Equal(grid.Empty))

		cell.Owner = grid.OfNet(7)
		Expect(g.Lookup(c).Owner).To(Equal(grid.OfNet(7)))
	})

	It("coerces a non-positive max_stack to 1", func() {
		layers := []grid.Layer{{Index: 0, Dir: grid.Horizontal, PitchX: 1, PitchY: 1}}
		g := grid.New(layers, 0, 0, []int{4}, []int{4}, 0, nil)
		Expect(g.MaxStack).To(Equal(1))
	})

	It("rasterises a pin rectangle into primary and extended taps", func() {
		g := twoLayerGrid()
		rect := grid.Rect{MinX: 2.4, MinY: 2.4, MaxX: 4.6, MaxY: 4.6}
		primary, extended := g.RasterizeRect(0, rect, 0.6)

		Expect(primary).To(ContainElement(grid.Coord{X: 3, Y: 3, L: 0}))
		Expect(primary).To(ContainElement(grid.Coord{X: 4, Y: 4, L: 0}))
		Expect(extended).To(ContainElement(grid.Coord{X: 2, Y: 2, L: 0}))
		for _, c := range extended {
			Expect(primary).NotTo(ContainElement(c))
		}
	})

	It("marks obstruction geometry as unroutable", func() {
		g := twoLayerGrid()
		g.MarkObstructed(0, grid.Rect{MinX: 0.5, MinY: 0.5, MaxX: 2.5, MaxY: 2.5})

		c := g.Lookup(grid.Coord{X: 1, Y: 1, L: 0})
		Expect(c.Owner).To(Equal(grid.Obstructed))
	})

	It("restores a cell to no-net on rip-up while preserving pin geometry", func() {
		g := twoLayerGrid()
		c := grid.Coord{X: 5, Y: 5, L: 0}
		cell := g.Lookup(c)
		cell.Owner = grid.OfNet(1)
		cell.RoutedByNet = true
		cell.Blockage = cell.Blockage.Set(grid.North)
		cell.OffsetTap = true
		cell.Stub = 0.2

		g.RestoreCell(c)

		restored := g.Lookup(c)
		Expect(restored.Owner).To(Equal(grid.Empty))
		Expect(restored.RoutedByNet).To(BeFalse())
		Expect(restored.Blockage.Has(grid.North)).To(BeTrue())
		Expect(restored.OffsetTap).To(BeTrue())
		Expect(restored.Stub).To(Equal(0.2))
	})

	It("computes stacked-via height along a contiguous column", func() {
		layers := make([]grid.Layer, 4)
		for i := range layers {
			dir := grid.Horizontal
			if i%2 == 1 {
				dir = grid.Vertical
			}
			layers[i] = grid.Layer{Index: i, Dir: dir, PitchX: 1, PitchY: 1}
		}
		nx := []int{10, 10, 10, 10}
		ny := []int{10, 10, 10, 10}
		g := grid.New(layers, 0, 0, nx, ny, 4, nil)

		for l := 0; l < 3; l++ {
			cell := g.Lookup(grid.Coord{X: 2, Y: 2, L: l})
			cell.Owner = grid.OfNet(9)
			cell.ViaUp = true
		}

		Expect(g.StackHeight(2, 2, 0, 9)).To(Equal(3))
		Expect(g.StackHeight(2, 2, 0, 8)).To(Equal(0))
	})
})
