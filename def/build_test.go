package def_test

import (
	"strings"
	"testing"

	"github.com/sarchlab/qrouter/def"
	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/lef"
)

const sampleLEFForBuild = `
LAYER M1
  TYPE ROUTING ;
  DIRECTION HORIZONTAL ;
  PITCH 1 ;
  WIDTH 0.5 ;
  SPACING 0.5 ;
END M1
LAYER M2
  TYPE ROUTING ;
  DIRECTION VERTICAL ;
  PITCH 1 ;
  WIDTH 0.5 ;
  SPACING 0.5 ;
END M2
MACRO INVX1
  SIZE 2.0 BY 2.0 ;
  PIN A
    DIRECTION INPUT ;
    USE SIGNAL ;
    PORT
      LAYER M1 ;
      RECT 0.0 0.9 0.2 1.1 ;
    END
  END A
  PIN Y
    DIRECTION OUTPUT ;
    USE SIGNAL ;
    PORT
      LAYER M1 ;
      RECT 1.8 0.9 2.0 1.1 ;
    END
  END Y
END INVX1
`

const sampleDEF = `
DESIGN top ;
UNITS DISTANCE MICRONS 1000 ;
DIEAREA ( 0 0 ) ( 10000 10000 ) ;
TRACKS X 0 DO 10 STEP 1000 LAYER M2 ;
TRACKS Y 0 DO 10 STEP 1000 LAYER M1 ;
COMPONENTS 2 ;
- U1 INVX1 + PLACED ( 0 0 ) N ;
- U2 INVX1 + PLACED ( 6000 0 ) N ;
END COMPONENTS
PINS 1 ;
- clk + NET clk + DIRECTION INPUT + USE SIGNAL
  + LAYER M1 ( -100 900 ) ( 100 1100 ) + PLACED ( 0 3000 ) N ;
END PINS
NETS 1 ;
- net1 ( U1 Y ) ( U2 A )
END NETS
BLOCKAGES 1 ;
- LAYER M1 ;
  RECT ( 8000 8000 ) ( 9000 9000 ) ;
END BLOCKAGES
`

func TestBuildFromLEFAndDEF(t *testing.T) {
	lib, err := lef.Load(strings.NewReader(sampleLEFForBuild), nil)
	if err != nil {
		t.Fatalf("lef.Load failed: %v", err)
	}
	layout, err := def.Load(strings.NewReader(sampleDEF), nil)
	if err != nil {
		t.Fatalf("def.Load failed: %v", err)
	}

	g, nl, err := def.Build(lib, layout, "VDD", "GND", 2, nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if g.NX(0) != 10 || g.NY(0) != 10 {
		t.Fatalf("M1 grid dims = %dx%d, want 10x10", g.NX(0), g.NY(0))
	}

	nets := nl.Nets()
	if len(nets) != 2 {
		t.Fatalf("expected 2 nets (clk, net1), got %d", len(nets))
	}

	foundNet1, foundClk := false, false
	for _, n := range nets {
		switch n.Name {
		case "net1":
			foundNet1 = true
			if len(n.Nodes) != 2 {
				t.Fatalf("net1 expected 2 nodes, got %d", len(n.Nodes))
			}
			if !n.BBox.Valid() {
				t.Fatalf("net1 bbox not extended")
			}
		case "clk":
			foundClk = true
			if len(n.Nodes) != 1 {
				t.Fatalf("clk expected 1 node, got %d", len(n.Nodes))
			}
		}
	}
	if !foundNet1 || !foundClk {
		t.Fatalf("missing expected nets: net1=%v clk=%v", foundNet1, foundClk)
	}

	blocked := g.Lookup(grid.Coord{X: 8, Y: 8, L: 0})
	if blocked.Owner.Kind != grid.KindObstructed {
		t.Fatalf("expected blockage cell obstructed, got %+v", blocked.Owner)
	}
}
