package router

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/qrouter/def"
	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/lef"
	"github.com/sarchlab/qrouter/netlist"
)

//go:generate mockgen -write_package_comment=false -package=router -destination=mock_io_test.go github.com/sarchlab/qrouter/router IO

// IO is the file-loading/writing boundary the command surface's load
// library, load layout, and write routed layout operations go through.
// Kept as an interface so router's own tests can mock it instead of
// parsing real LEF/DEF text.
type IO interface {
	ReadLibrary(path string) (*lef.Library, error)
	ReadLayout(path string) (*def.Layout, error)
	WriteLayout(path string, layout *def.Layout, g *grid.Grid, nl *netlist.Netlist) error
}

// fileIO is the real IO, opening files on disk and delegating to the
// lef/def packages.
type fileIO struct{}

func (fileIO) ReadLibrary(path string) (*lef.Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening library file: %w", err)
	}
	defer f.Close()
	return lef.Load(f, slog.Default())
}

func (fileIO) ReadLayout(path string) (*def.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening layout file: %w", err)
	}
	defer f.Close()
	return def.Load(f, slog.Default())
}

func (fileIO) WriteLayout(path string, layout *def.Layout, g *grid.Grid, nl *netlist.Netlist) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating routed layout file: %w", err)
	}
	defer f.Close()
	return def.Write(f, layout, g, nl)
}
