package def

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sarchlab/qrouter/grid"
	"github.com/sarchlab/qrouter/internal/lexer"
)

// Load parses a DEF document from r into a Layout. Statements this
// router has no use for (VERSION, DIVIDERCHAR, BUSBITCHARS, VIAS,
// GCELLGRID, PROPERTYDEFINITIONS, ...) are skipped.
func Load(r io.Reader, log *slog.Logger) (*Layout, error) {
	if log == nil {
		log = slog.Default()
	}

	p := &parser{lex: lexer.New(r)}
	layout := &Layout{}

	for {
		tok, ok := p.next()
		if !ok {
			break
		}
		switch strings.ToUpper(tok) {
		case "UNITS":
			p.next() // DISTANCE
			p.next() // MICRONS
			u, err := p.readFloat()
			if err != nil {
				return nil, fmt.Errorf("def: %w", err)
			}
			layout.UnitsPerMicron = u
			p.skipStatement()
		case "DESIGN":
			name, _ := p.next()
			layout.Design = name
			p.skipStatement()
		case "DIEAREA":
			x1, y1, err := p.readPoint(0, 0)
			if err != nil {
				return nil, fmt.Errorf("def: %w", err)
			}
			x2, y2, err := p.readPoint(0, 0)
			if err != nil {
				return nil, fmt.Errorf("def: %w", err)
			}
			layout.DieArea = grid.Rect{MinX: x1, MinY: y1, MaxX: x2, MaxY: y2}
			p.skipStatement()
		case "TRACKS":
			t, err := p.readTrack()
			if err != nil {
				return nil, fmt.Errorf("def: %w", err)
			}
			layout.Tracks = append(layout.Tracks, t)
		case "COMPONENTS":
			p.skipCount()
			for {
				tok2, ok := p.next()
				if !ok {
					return nil, fmt.Errorf("def: unterminated COMPONENTS")
				}
				if strings.EqualFold(tok2, "END") {
					p.next()
					break
				}
				if tok2 != "-" {
					continue
				}
				c, err := p.readComponent()
				if err != nil {
					return nil, fmt.Errorf("def: %w", err)
				}
				layout.Components = append(layout.Components, c)
			}
		case "PINS":
			p.skipCount()
			for {
				tok2, ok := p.next()
				if !ok {
					return nil, fmt.Errorf("def: unterminated PINS")
				}
				if strings.EqualFold(tok2, "END") {
					p.next()
					break
				}
				if tok2 != "-" {
					continue
				}
				pin, err := p.readPin()
				if err != nil {
					return nil, fmt.Errorf("def: %w", err)
				}
				layout.Pins = append(layout.Pins, pin)
			}
		case "SPECIALNETS", "NETS":
			special := strings.EqualFold(tok, "SPECIALNETS")
			p.skipCount()
			for {
				tok2, ok := p.next()
				if !ok {
					return nil, fmt.Errorf("def: unterminated %s", strings.ToUpper(tok))
				}
				if strings.EqualFold(tok2, "END") {
					p.next()
					break
				}
				if tok2 != "-" {
					continue
				}
				n, err := p.readNet(special)
				if err != nil {
					return nil, fmt.Errorf("def: %w", err)
				}
				layout.Nets = append(layout.Nets, n)
			}
		case "BLOCKAGES":
			p.skipCount()
			bs, err := p.readBlockagesSection()
			if err != nil {
				return nil, fmt.Errorf("def: %w", err)
			}
			layout.Blockages = bs
		case "END":
			p.next()
		default:
			p.skipStatement()
		}
	}
	if err := p.lex.Err(); err != nil {
		return nil, fmt.Errorf("def: %w", err)
	}
	return layout, nil
}

type parser struct {
	lex *lexer.Lexer
}

func (p *parser) next() (string, bool) { return p.lex.Next() }

func (p *parser) skipStatement() {
	for {
		tok, ok := p.next()
		if !ok || tok == ";" {
			return
		}
	}
}

// skipClause consumes tokens up to (but not including) the next "+" or
// ";" at paren depth zero, for clauses this loader does not itself
// interpret (SOURCE, WEIGHT, PATTERN, and similar DEF properties).
func (p *parser) skipClause() {
	depth := 0
	for {
		tok, ok := p.next()
		if !ok {
			return
		}
		switch tok {
		case "(":
			depth++
		case ")":
			depth--
		case "+", ";":
			if depth == 0 {
				p.lex.Push(tok)
				return
			}
		}
	}
}

func (p *parser) skipCount() {
	p.next()
	p.skipStatement()
}

func (p *parser) readFloat() (float64, error) {
	tok, ok := p.next()
	if !ok {
		return 0, fmt.Errorf("expected number, got EOF")
	}
	return lexer.Float(tok)
}

func (p *parser) readInt() (int, error) {
	tok, ok := p.next()
	if !ok {
		return 0, fmt.Errorf("expected integer, got EOF")
	}
	return lexer.Int(tok)
}

// readPoint parses "( x y )", where either coordinate may be "*" to mean
// "same as the previous point on this axis" (DEF's repeated-coordinate
// shorthand in ROUTED polylines).
func (p *parser) readPoint(lastX, lastY float64) (float64, float64, error) {
	if tok, ok := p.next(); !ok || tok != "(" {
		return 0, 0, fmt.Errorf("expected '(', got %q", tok)
	}
	xtok, ok := p.next()
	if !ok {
		return 0, 0, fmt.Errorf("expected x coordinate, got EOF")
	}
	ytok, ok := p.next()
	if !ok {
		return 0, 0, fmt.Errorf("expected y coordinate, got EOF")
	}
	if tok, ok := p.next(); !ok || tok != ")" {
		return 0, 0, fmt.Errorf("expected ')', got %q", tok)
	}

	x, y := lastX, lastY
	if xtok != "*" {
		v, err := lexer.Float(xtok)
		if err != nil {
			return 0, 0, err
		}
		x = v
	}
	if ytok != "*" {
		v, err := lexer.Float(ytok)
		if err != nil {
			return 0, 0, err
		}
		y = v
	}
	return x, y, nil
}

// tryFloat consumes the next token if it parses as a float (a
// SPECIALNETS wire's optional explicit width); otherwise it pushes the
// token back and reports false.
func (p *parser) tryFloat() (float64, bool) {
	tok, ok := p.next()
	if !ok {
		return 0, false
	}
	v, err := lexer.Float(tok)
	if err != nil {
		p.lex.Push(tok)
		return 0, false
	}
	return v, true
}

func (p *parser) readTrack() (Track, error) {
	axis, ok := p.next()
	if !ok {
		return Track{}, fmt.Errorf("TRACKS missing axis")
	}
	start, err := p.readFloat()
	if err != nil {
		return Track{}, err
	}
	p.next() // "DO"
	num, err := p.readInt()
	if err != nil {
		return Track{}, err
	}
	p.next() // "STEP"
	step, err := p.readFloat()
	if err != nil {
		return Track{}, err
	}
	p.next() // "LAYER"
	layer, ok := p.next()
	if !ok {
		return Track{}, fmt.Errorf("TRACKS missing layer name")
	}
	p.skipStatement()
	return Track{Layer: layer, Axis: strings.ToUpper(axis), Start: start, Num: num, Step: step}, nil
}

func parseOrientation(tok string) (Orientation, error) {
	switch strings.ToUpper(tok) {
	case "N":
		return N, nil
	case "FN":
		return FN, nil
	case "FS":
		return FS, nil
	case "S", "E", "W", "FE", "FW":
		return 0, fmt.Errorf("rotated placement orientation %q not supported", tok)
	default:
		return 0, fmt.Errorf("unknown placement orientation %q", tok)
	}
}

func (p *parser) readComponent() (Component, error) {
	inst, ok := p.next()
	if !ok {
		return Component{}, fmt.Errorf("COMPONENTS entry missing instance name")
	}
	macro, ok := p.next()
	if !ok {
		return Component{}, fmt.Errorf("COMPONENTS entry %s missing macro name", inst)
	}
	c := Component{Name: inst, Macro: macro}

	for {
		tok, ok := p.next()
		if !ok {
			return Component{}, fmt.Errorf("unterminated COMPONENTS entry %s", inst)
		}
		switch tok {
		case ";":
			return c, nil
		case "+":
			kw, _ := p.next()
			switch strings.ToUpper(kw) {
			case "PLACED", "FIXED", "COVER":
				x, y, err := p.readPoint(0, 0)
				if err != nil {
					return Component{}, err
				}
				orientTok, _ := p.next()
				orient, err := parseOrientation(orientTok)
				if err != nil {
					return Component{}, fmt.Errorf("component %s: %w", inst, err)
				}
				c.OriginX, c.OriginY, c.Orient = x, y, orient
				c.Fixed = strings.EqualFold(kw, "FIXED")
			default:
				p.skipClause()
			}
		default:
			p.skipClause()
		}
	}
}

func (p *parser) readPin() (Pin, error) {
	name, ok := p.next()
	if !ok {
		return Pin{}, fmt.Errorf("PINS entry missing name")
	}
	pin := Pin{Name: name}

	for {
		tok, ok := p.next()
		if !ok {
			return Pin{}, fmt.Errorf("unterminated PINS entry %s", name)
		}
		switch tok {
		case ";":
			return pin, nil
		case "+":
			kw, _ := p.next()
			switch strings.ToUpper(kw) {
			case "NET":
				net, _ := p.next()
				pin.Net = net
			case "DIRECTION":
				d, _ := p.next()
				pin.Direction = strings.ToUpper(d)
			case "USE":
				u, _ := p.next()
				pin.Use = strings.ToUpper(u)
			case "LAYER":
				layer, _ := p.next()
				x1, y1, err := p.readPoint(0, 0)
				if err != nil {
					return Pin{}, err
				}
				x2, y2, err := p.readPoint(0, 0)
				if err != nil {
					return Pin{}, err
				}
				pin.Geometry = append(pin.Geometry, PinGeometry{
					Layer: layer,
					Rect:  grid.Rect{MinX: x1, MinY: y1, MaxX: x2, MaxY: y2},
				})
			case "PLACED", "FIXED", "COVER":
				x, y, err := p.readPoint(0, 0)
				if err != nil {
					return Pin{}, err
				}
				orientTok, _ := p.next()
				orient, err := parseOrientation(orientTok)
				if err != nil {
					return Pin{}, fmt.Errorf("pin %s: %w", name, err)
				}
				pin.OriginX, pin.OriginY, pin.Orient, pin.Placed = x, y, orient, true
			default:
				p.skipClause()
			}
		default:
			p.skipClause()
		}
	}
}

func (p *parser) readNet(special bool) (NetDef, error) {
	name, ok := p.next()
	if !ok {
		return NetDef{}, fmt.Errorf("NETS entry missing name")
	}
	n := NetDef{Name: name, Special: special}

	for {
		tok, ok := p.next()
		if !ok {
			return NetDef{}, fmt.Errorf("unterminated NETS entry %s", name)
		}
		switch tok {
		case ";":
			return n, nil
		case "(":
			inst, _ := p.next()
			pinName, _ := p.next()
			if closeTok, ok := p.next(); !ok || closeTok != ")" {
				return NetDef{}, fmt.Errorf("net %s: expected ')' closing connection", name)
			}
			n.Connections = append(n.Connections, Connection{Instance: inst, Pin: pinName})
		case "+":
			kw, _ := p.next()
			switch strings.ToUpper(kw) {
			case "USE":
				u, _ := p.next()
				n.Use = strings.ToUpper(u)
			case "ROUTED", "FIXED":
				wires, err := p.readRouted(special)
				if err != nil {
					return NetDef{}, fmt.Errorf("net %s: %w", name, err)
				}
				n.Routed = append(n.Routed, wires...)
			default:
				p.skipClause()
			}
		default:
			p.skipClause()
		}
	}
}

// readRouted parses a ROUTED clause: a layer name, an optional width
// (SPECIALNETS only), and a chain of points, possibly continuing onto a
// new layer after a NEW keyword. It stops (without consuming) at the
// next "+" or ";".
func (p *parser) readRouted(special bool) ([]RoutedWire, error) {
	var wires []RoutedWire
	var lastX, lastY float64
	haveWire := false

	for {
		tok, ok := p.next()
		if !ok {
			return nil, fmt.Errorf("unterminated ROUTED clause")
		}
		switch tok {
		case ";", "+":
			p.lex.Push(tok)
			return wires, nil
		case "NEW":
			layer, _ := p.next()
			w := RoutedWire{Layer: layer}
			if special {
				if width, ok := p.tryFloat(); ok {
					w.Width = width
				}
			}
			wires = append(wires, w)
			haveWire = true
		default:
			if !haveWire {
				w := RoutedWire{Layer: tok}
				if special {
					if width, ok := p.tryFloat(); ok {
						w.Width = width
					}
				}
				wires = append(wires, w)
				haveWire = true
				continue
			}
			p.lex.Push(tok)
			x, y, err := p.readPoint(lastX, lastY)
			if err != nil {
				return nil, err
			}
			lastX, lastY = x, y
			cur := &wires[len(wires)-1]
			cur.Points = append(cur.Points, Point{X: x, Y: y})
		}
	}
}

func (p *parser) readBlockagesSection() ([]Blockage, error) {
	var out []Blockage
	for {
		tok, ok := p.next()
		if !ok {
			return nil, fmt.Errorf("unterminated BLOCKAGES")
		}
		switch {
		case strings.EqualFold(tok, "END"):
			p.next()
			return out, nil
		case tok == "-":
			kw, _ := p.next()
			if !strings.EqualFold(kw, "LAYER") {
				p.skipStatement()
				continue
			}
			layer, _ := p.next()
			p.skipStatement()

			for {
				rtok, ok := p.next()
				if !ok {
					return nil, fmt.Errorf("unterminated BLOCKAGES")
				}
				if !strings.EqualFold(rtok, "RECT") {
					p.lex.Push(rtok)
					break
				}
				x1, y1, err := p.readPoint(0, 0)
				if err != nil {
					return nil, err
				}
				x2, y2, err := p.readPoint(0, 0)
				if err != nil {
					return nil, err
				}
				p.skipStatement()
				out = append(out, Blockage{Layer: layer, Rect: grid.Rect{MinX: x1, MinY: y1, MaxX: x2, MaxY: y2}})
			}
		default:
			p.skipStatement()
		}
	}
}
