package eval

import "github.com/sml-lang/interp/internal/core"

// matchPattern tries to match value against pattern, returning the
// bindings it introduces. Patterns are tried in clause order by the
// caller; a false result here means "try the next clause" (spec §4.4
// match-failure semantics only apply once every clause has failed).
func matchPattern(pat core.Pat, value Value) (map[string]Value, bool) {
	bindings := make(map[string]Value)
	if matchInto(pat, value, bindings) {
		return bindings, true
	}
	return nil, false
}

func matchInto(pat core.Pat, value Value, bindings map[string]Value) bool {
	switch p := pat.(type) {
	case *core.PatWildcard:
		return true

	case *core.PatIdent:
		bindings[p.Name] = value
		return true

	case *core.PatLiteral:
		return literalMatches(p.Value, value)

	case *core.PatCon0:
		cv, ok := value.(ConstructorValue)
		return ok && cv.Name == p.Name && cv.Arg == nil

	case *core.PatCon1:
		cv, ok := value.(ConstructorValue)
		if !ok || cv.Name != p.Name || cv.Arg == nil {
			return false
		}
		return matchInto(p.Arg, cv.Arg, bindings)

	case *core.PatTuple:
		tv, ok := value.(TupleValue)
		if !ok || len(tv.Elems) != len(p.Elems) {
			return false
		}
		for i, ep := range p.Elems {
			if !matchInto(ep, tv.Elems[i], bindings) {
				return false
			}
		}
		return true

	case *core.PatList:
		lv, ok := value.(ListValue)
		if !ok || len(lv.Elems) != len(p.Elems) {
			return false
		}
		for i, ep := range p.Elems {
			if !matchInto(ep, lv.Elems[i], bindings) {
				return false
			}
		}
		return true

	case *core.PatCons:
		lv, ok := value.(ListValue)
		if !ok || len(lv.Elems) == 0 {
			return false
		}
		if !matchInto(p.Head, lv.Elems[0], bindings) {
			return false
		}
		return matchInto(p.Tail, ListValue{Elems: lv.Elems[1:]}, bindings)

	case *core.PatRecord:
		tv, ok := value.(TupleValue)
		if !ok || len(tv.Elems) != len(p.Pats) {
			return false
		}
		for i, fp := range p.Pats {
			if !matchInto(fp, tv.Elems[i], bindings) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

func literalMatches(lit interface{}, value Value) bool {
	switch v := value.(type) {
	case IntValue:
		i, ok := lit.(int64)
		return ok && i == v.Value
	case RealValue:
		f, ok := lit.(float64)
		return ok && f == v.Value
	case BoolValue:
		b, ok := lit.(bool)
		return ok && b == v.Value
	case CharValue:
		c, ok := lit.(rune)
		return ok && c == v.Value
	case StringValue:
		s, ok := lit.(string)
		return ok && s == v.Value
	case UnitValue:
		return true
	default:
		return false
	}
}
