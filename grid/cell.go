package grid

// NetID identifies a net in arena-indexed storage (Design Notes: typed
// integer identifiers rather than pointer graphs). It is owned and
// allocated by the netlist package; grid only stores and compares it.
type NetID int32

// OwnerKind is the tag of the Owner variant held by an occupancy cell.
// Design Notes: a tagged variant rather than a handful of reserved
// integer ranges sharing NetID's namespace.
type OwnerKind uint8

const (
	// KindEmpty is the "no net" sentinel: routable, currently unused.
	KindEmpty OwnerKind = iota
	// KindObstructed is the "obstructed" sentinel: unroutable due to a
	// pin or library obstruction.
	KindObstructed
	// KindPower is the reserved identifier for the design's power rail.
	KindPower
	// KindGround is the reserved identifier for the design's ground rail.
	KindGround
	// KindNet means Owner.Net holds a real net identifier.
	KindNet
)

// Owner is the tagged variant recorded as the "owning net" of an
// occupancy cell.
type Owner struct {
	Kind OwnerKind
	Net  NetID // meaningful only when Kind == KindNet
}

// Empty is the "no net" owner: routable and currently unoccupied.
var Empty = Owner{Kind: KindEmpty}

// Obstructed is the "obstructed" owner: unroutable.
var Obstructed = Owner{Kind: KindObstructed}

// Power is the reserved power-rail owner.
var Power = Owner{Kind: KindPower}

// Ground is the reserved ground-rail owner.
var Ground = Owner{Kind: KindGround}

// OfNet wraps a real net identifier as an Owner.
func OfNet(id NetID) Owner {
	return Owner{Kind: KindNet, Net: id}
}

// Routable reports whether a route may terminate or pass through a cell
// with this owner on a first pass (i.e. it is the "no net" sentinel).
func (o Owner) Routable() bool {
	return o.Kind == KindEmpty
}

// IsRail reports whether o is the power or ground reserved owner.
func (o Owner) IsRail() bool {
	return o.Kind == KindPower || o.Kind == KindGround
}

// IsNet reports whether o is a real net identifier equal to id.
func (o Owner) IsNet(id NetID) bool {
	return o.Kind == KindNet && o.Net == id
}

// ForeignTo reports whether o is a real net different from id — the
// condition that makes a cell crossable only in stage-2 conflict mode.
func (o Owner) ForeignTo(id NetID) bool {
	return o.Kind == KindNet && o.Net != id
}

// Cell is one occupancy record: every (x, y, L) on every routing layer
// carries exactly one of these.
type Cell struct {
	Owner Owner

	// RoutedByNet distinguishes wires committed during this routing
	// session from pre-existing ownership (e.g. painted obstruction from
	// a pre-routed SPECIALNETS/NETS section).
	RoutedByNet bool

	// Blockage packs one bit per compass direction; set when a pin's
	// offset tap forces a via or wire on this cell to be shifted to meet
	// the tap. These bits survive rip-up.
	Blockage DirBits

	// OffsetTap marks a cell whose Stub distance is meaningful: an
	// off-grid pin whose nearest reachable cell needs a sub-grid shift
	// when a route terminates here.
	OffsetTap bool

	// Stub is the signed physical offset, in microns, applied to a route
	// endpoint committed on this cell when OffsetTap is set.
	Stub float64

	// ViaUp marks that a via segment occupies this cell, joining this
	// layer to the one above. Used to measure stacked-via height.
	ViaUp bool
}

// reset restores c to an empty, unobstructed, unblocked cell. Grid
// construction allocates zero-valued cells directly and does not call it;
// rip-up must never call this, as it would drop the surviving blockage
// bits a pin-derived cell carries.
func (c *Cell) reset() {
	*c = Cell{}
}
