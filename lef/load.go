package lef

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/internal/lexer"
)

// Load parses a LEF document from r into a Library. Sections this router
// has no use for (PROPERTYDEFINITIONS, UNITS, spacing-rule variants
// beyond a flat table, SITE) are skipped rather than rejected, matching
// qrouter-1.2.34's LefSkipSection behavior for anything it does not
// itself need.
func Load(r io.Reader, log *slog.Logger) (*Library, error) {
	if log == nil {
		log = slog.Default()
	}

	p := &parser{lex: lexer.New(r), log: log}
	lib := &Library{Vias: map[string]*Via{}, Macros: map[string]*Macro{}}

	for {
		tok, ok := p.lex.Next()
		if !ok {
			break
		}
		switch strings.ToUpper(tok) {
		case "LAYER":
			layer, err := p.readLayer()
			if err != nil {
				return nil, err
			}
			lib.Layers = append(lib.Layers, layer)
		case "VIA":
			via, err := p.readVia()
			if err != nil {
				return nil, err
			}
			lib.Vias[via.Name] = via
		case "MACRO":
			macro, err := p.readMacro()
			if err != nil {
				return nil, err
			}
			lib.Macros[macro.Name] = macro
		case "END":
			// top-level END LIBRARY or a stray END from a section this
			// loader does not track; either way there is nothing to do.
			p.lex.Next()
		default:
			// unrecognized top-level statement (UNITS, PROPERTYDEFINITIONS,
			// SITE, ...): consume it up to its terminating semicolon.
			p.skipStatement()
		}
	}
	if err := p.lex.Err(); err != nil {
		return nil, fmt.Errorf("lef: %w", err)
	}
	return lib, nil
}

type parser struct {
	lex *lexer.Lexer
	log *slog.Logger
}

func (p *parser) next() (string, bool) { return p.lex.Next() }

// skipStatement consumes tokens through the next semicolon.
func (p *parser) skipStatement() {
	for {
		tok, ok := p.next()
		if !ok || tok == ";" {
			return
		}
	}
}

func (p *parser) readLayer() (Layer, error) {
	name, ok := p.next()
	if !ok {
		return Layer{}, fmt.Errorf("lef: LAYER missing name")
	}
	l := Layer{Name: name}

	for {
		tok, ok := p.next()
		if !ok {
			return Layer{}, fmt.Errorf("lef: unterminated LAYER %s", name)
		}
		switch strings.ToUpper(tok) {
		case "END":
			p.next() // layer name repeated
			return l, nil
		case "TYPE":
			kind, _ := p.next()
			switch strings.ToUpper(kind) {
			case "ROUTING":
				l.Class = ClassRouting
			case "CUT":
				l.Class = ClassCut
			default:
				l.Class = ClassMasterslice
			}
			p.skipStatement()
		case "DIRECTION":
			dir, _ := p.next()
			if strings.EqualFold(dir, "VERTICAL") {
				l.Dir = grid.Vertical
			} else {
				l.Dir = grid.Horizontal
			}
			p.skipStatement()
		case "PITCH":
			x, err := p.readFloat()
			if err != nil {
				return Layer{}, err
			}
			y := p.readOneOrTwo(x)
			l.PitchX, l.PitchY = x, y
		case "WIDTH":
			w, err := p.readFloat()
			if err != nil {
				return Layer{}, err
			}
			l.Width = w
			p.skipStatement()
		case "OFFSET":
			x, err := p.readFloat()
			if err != nil {
				return Layer{}, err
			}
			y := p.readOneOrTwo(x)
			l.OffsetX, l.OffsetY = x, y
		case "SPACING":
			s, err := p.readFloat()
			if err != nil {
				return Layer{}, err
			}
			l.Spacing = append(l.Spacing, grid.SpacingEntry{MinWidth: 0, Spacing: s})
			p.skipStatement()
		default:
			p.skipStatement()
		}
	}
}

func (p *parser) readVia() (*Via, error) {
	name, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("lef: VIA missing name")
	}
	v := &Via{Name: name}
	var layersSeen []string

	for {
		tok, ok := p.next()
		if !ok {
			return nil, fmt.Errorf("lef: unterminated VIA %s", name)
		}
		switch strings.ToUpper(tok) {
		case "END":
			p.next()
			return v, nil
		case "DEFAULT":
			// header flag on the VIA line itself, with no terminating
			// semicolon; skipping a statement here would swallow the
			// first LAYER statement.
		case "LAYER":
			lname, _ := p.next()
			p.skipStatement()
			layersSeen = append(layersSeen, lname)
		case "RECT":
			r, err := p.readRect()
			if err != nil {
				return nil, err
			}
			switch len(layersSeen) {
			case 1:
				v.LowerLayer = layersSeen[0]
				v.LowerRect = r
			case 2:
				v.CutLayer = layersSeen[1]
				v.CutRect = r
			case 3:
				v.UpperLayer = layersSeen[2]
				v.UpperRect = r
			}
		default:
			p.skipStatement()
		}
	}
}

func (p *parser) readMacro() (*Macro, error) {
	name, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("lef: MACRO missing name")
	}
	m := &Macro{Name: name, Ports: map[string]*Port{}}

	for {
		tok, ok := p.next()
		if !ok {
			return nil, fmt.Errorf("lef: unterminated MACRO %s", name)
		}
		switch strings.ToUpper(tok) {
		case "END":
			p.next()
			return m, nil
		case "SIZE":
			w, err := p.readFloat()
			if err != nil {
				return nil, err
			}
			p.next() // "BY"
			h, err := p.readFloat()
			if err != nil {
				return nil, err
			}
			m.SizeX, m.SizeY = w, h
			p.skipStatement()
		case "PIN":
			port, err := p.readPin()
			if err != nil {
				return nil, err
			}
			m.Ports[port.Name] = port
		case "OBS":
			rects, err := p.readGeometry("OBS")
			if err != nil {
				return nil, err
			}
			m.Obstructions = append(m.Obstructions, rects...)
		default:
			p.skipStatement()
		}
	}
}

func (p *parser) readPin() (*Port, error) {
	name, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("lef: PIN missing name")
	}
	port := &Port{Name: name}

	for {
		tok, ok := p.next()
		if !ok {
			return nil, fmt.Errorf("lef: unterminated PIN %s", name)
		}
		switch strings.ToUpper(tok) {
		case "END":
			p.next()
			return port, nil
		case "DIRECTION":
			dir, _ := p.next()
			port.Class = parsePortClass(dir)
			p.skipStatement()
		case "USE":
			use, _ := p.next()
			port.Use = parsePortUse(use)
			p.skipStatement()
		case "PORT":
			rects, err := p.readGeometry("PORT")
			if err != nil {
				return nil, err
			}
			port.Rects = append(port.Rects, rects...)
		default:
			p.skipStatement()
		}
	}
}

// readGeometry parses the LAYER/RECT pairs of a PORT or OBS block until
// its matching END.
func (p *parser) readGeometry(section string) ([]Rect, error) {
	var rects []Rect
	current := ""
	for {
		tok, ok := p.next()
		if !ok {
			return nil, fmt.Errorf("lef: unterminated %s", section)
		}
		switch strings.ToUpper(tok) {
		case "END":
			return rects, nil
		case "LAYER":
			current, _ = p.next()
			p.skipStatement()
		case "RECT":
			r, err := p.readRect()
			if err != nil {
				return nil, err
			}
			rects = append(rects, Rect{Layer: current, Rect: r})
		default:
			p.skipStatement()
		}
	}
}

func (p *parser) readRect() (grid.Rect, error) {
	x1, err := p.readFloat()
	if err != nil {
		return grid.Rect{}, err
	}
	y1, err := p.readFloat()
	if err != nil {
		return grid.Rect{}, err
	}
	x2, err := p.readFloat()
	if err != nil {
		return grid.Rect{}, err
	}
	y2, err := p.readFloat()
	if err != nil {
		return grid.Rect{}, err
	}
	p.skipStatement()
	return grid.Rect{MinX: x1, MinY: y1, MaxX: x2, MaxY: y2}, nil
}

func (p *parser) readFloat() (float64, error) {
	tok, ok := p.next()
	if !ok {
		return 0, fmt.Errorf("lef: expected number, got EOF")
	}
	return lexer.Float(tok)
}

// readOneOrTwo handles a PITCH/OFFSET statement's optional second value:
// LEF allows either "PITCH x ;" or "PITCH x y ;". It consumes through the
// statement's terminating semicolon either way and returns first when
// only one value was given.
func (p *parser) readOneOrTwo(first float64) float64 {
	tok, ok := p.next()
	if !ok || tok == ";" {
		return first
	}
	if v, err := lexer.Float(tok); err == nil {
		p.skipStatement()
		return v
	}
	p.skipStatement()
	return first
}

func parsePortClass(s string) PortClass {
	switch strings.ToUpper(s) {
	case "INPUT":
		return PortClassInput
	case "TRISTATE":
		return PortClassTristate
	case "OUTPUT":
		return PortClassOutput
	case "INOUT", "BIDIRECTIONAL":
		return PortClassBidirectional
	case "FEEDTHRU", "FEEDTHROUGH":
		return PortClassFeedthrough
	default:
		return PortClassDefault
	}
}

func parsePortUse(s string) PortUse {
	switch strings.ToUpper(s) {
	case "SIGNAL":
		return PortUseSignal
	case "ANALOG":
		return PortUseAnalog
	case "POWER":
		return PortUsePower
	case "GROUND":
		return PortUseGround
	case "CLOCK":
		return PortUseClock
	default:
		return PortUseDefault
	}
}
