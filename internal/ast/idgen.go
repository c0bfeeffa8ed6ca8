package ast

// IDGen hands out the stable NodeIDs every surface node carries. The
// parser owns the only instance: resolution never synthesizes new
// surface nodes (it builds core nodes directly, which carry an
// attached type instead of a NodeID), so nothing past the parser needs
// its own generator.
type IDGen struct {
	next uint64
}

// NewIDGen returns a generator starting at 1 (0 is reserved as "no id").
func NewIDGen() *IDGen {
	return &IDGen{next: 1}
}

func (g *IDGen) Next() uint64 {
	id := g.next
	g.next++
	return id
}

func (g *IDGen) Peek() uint64 {
	return g.next
}
