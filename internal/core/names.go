package core

// PatNames returns, in left-to-right order, every identifier p binds.
// Mirrors ast.Names for the core pattern set; the pipeline uses it to
// know which names a just-evaluated top-level declaration introduced.
func PatNames(p Pat) []string {
	switch n := p.(type) {
	case *PatIdent:
		return []string{n.Name}
	case *PatWildcard, *PatLiteral, *PatCon0:
		return nil
	case *PatCon1:
		return PatNames(n.Arg)
	case *PatTuple:
		var out []string
		for _, e := range n.Elems {
			out = append(out, PatNames(e)...)
		}
		return out
	case *PatList:
		var out []string
		for _, e := range n.Elems {
			out = append(out, PatNames(e)...)
		}
		return out
	case *PatCons:
		return append(PatNames(n.Head), PatNames(n.Tail)...)
	case *PatRecord:
		var out []string
		for _, sub := range n.Pats {
			out = append(out, PatNames(sub)...)
		}
		return out
	default:
		return nil
	}
}
