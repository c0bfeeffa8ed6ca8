package eval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sml-lang/interp/internal/core"
)

// evalFrom executes a relational comprehension (spec §4.5): a nested-
// loop join over the sources, then where/group/order steps applied in
// sequence, then the yield expression evaluated once per surviving row.
func (e *Evaluator) evalFrom(n *core.From) (Value, error) {
	rows, err := e.joinSources(n.Sources, 0, e.env)
	if err != nil {
		return nil, err
	}

	for i := range n.Steps {
		step := &n.Steps[i]
		switch step.Kind {
		case core.FromWhere:
			rows, err = filterRows(rows, step.Pred)
		case core.FromGroup:
			rows, err = groupRows(e.env, rows, step)
		case core.FromOrder:
			rows, err = orderRows(rows, step.OrderItems)
		default:
			err = fmt.Errorf("eval: unsupported from-step kind %v", step.Kind)
		}
		if err != nil {
			return nil, err
		}
	}

	results := make([]Value, len(rows))
	for i, rowEnv := range rows {
		sub := &Evaluator{env: rowEnv}
		v, err := sub.Eval(n.Yield)
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return ListValue{Elems: results}, nil
}

// joinSources builds one Environment per surviving row of the Cartesian
// product of every source, evaluating each source's list expression in
// the row-so-far so a later source can depend on an earlier one (e.g.
// "from o in orders, i in o.items"). A source pattern that fails to
// match an element drops that element from the join, the same way a
// where clause would.
func (e *Evaluator) joinSources(sources []core.FromSource, idx int, base *Environment) ([]*Environment, error) {
	if idx == len(sources) {
		return []*Environment{base}, nil
	}
	src := sources[idx]
	sub := &Evaluator{env: base}
	listVal, err := sub.Eval(src.Exp)
	if err != nil {
		return nil, err
	}
	lv, ok := listVal.(ListValue)
	if !ok {
		return nil, fmt.Errorf("eval: from-source did not evaluate to a list (%T)", listVal)
	}

	var out []*Environment
	for _, elem := range lv.Elems {
		rowEnv := base.NewChild()
		if !bindPatternInto(rowEnv, src.Pat, elem) {
			continue
		}
		rest, err := e.joinSources(sources, idx+1, rowEnv)
		if err != nil {
			return nil, err
		}
		out = append(out, rest...)
	}
	return out, nil
}

func filterRows(rows []*Environment, pred core.Expr) ([]*Environment, error) {
	var out []*Environment
	for _, row := range rows {
		sub := &Evaluator{env: row}
		v, err := sub.Eval(pred)
		if err != nil {
			return nil, err
		}
		b, ok := v.(BoolValue)
		if !ok {
			return nil, fmt.Errorf("eval: where-clause did not evaluate to bool (%T)", v)
		}
		if b.Value {
			out = append(out, row)
		}
	}
	return out, nil
}

// groupRows partitions rows by the value of their group-key
// expressions and replaces each group with a single row binding only
// the group key names and the aggregate results (spec §4.5: "group
// resets the visible binding set").
func groupRows(base *Environment, rows []*Environment, step *core.FromStep) ([]*Environment, error) {
	type group struct {
		keyVals []Value
		members []*Environment
	}

	order := make([]string, 0)
	groups := make(map[string]*group)

	for _, row := range rows {
		sub := &Evaluator{env: row}
		keyVals := make([]Value, len(step.GroupKeys))
		for i, k := range step.GroupKeys {
			v, err := sub.Eval(k)
			if err != nil {
				return nil, err
			}
			keyVals[i] = v
		}
		key := groupKey(keyVals)
		g, ok := groups[key]
		if !ok {
			g = &group{keyVals: keyVals}
			groups[key] = g
			order = append(order, key)
		}
		g.members = append(g.members, row)
	}

	// Groups are emitted sorted by key, not first-row-encounter order, so
	// "from ... group" output is deterministic regardless of input order.
	sort.SliceStable(order, func(i, j int) bool {
		a, b := groups[order[i]].keyVals, groups[order[j]].keyVals
		for k := range a {
			c, err := compareValues(a[k], b[k])
			if err != nil || c == 0 {
				continue
			}
			return c < 0
		}
		return false
	})

	out := make([]*Environment, 0, len(order))
	for _, key := range order {
		g := groups[key]
		groupEnv := base.NewChild()
		for i, name := range step.GroupNames {
			groupEnv.Set(name, g.keyVals[i])
		}
		for _, agg := range step.Aggregates {
			v, err := evalAggregate(agg, g.members)
			if err != nil {
				return nil, err
			}
			groupEnv.Set(agg.Name, v)
		}
		out = append(out, groupEnv)
	}
	return out, nil
}

func groupKey(vals []Value) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	return strings.Join(parts, "\x00")
}

func evalAggregate(agg core.FromAggregate, rows []*Environment) (Value, error) {
	if agg.Fn == "count" {
		return IntValue{Value: int64(len(rows))}, nil
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("eval: aggregate %q over an empty group", agg.Fn)
	}
	vals := make([]Value, len(rows))
	for i, row := range rows {
		sub := &Evaluator{env: row}
		v, err := sub.Eval(agg.Arg)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	switch agg.Fn {
	case "sum":
		return reduceNumeric(vals, func(acc, v float64) float64 { return acc + v }, func(acc, v int64) int64 { return acc + v })
	case "min":
		return reduceCompare(vals, -1)
	case "max":
		return reduceCompare(vals, 1)
	case "avg":
		sum, err := reduceNumeric(vals, func(acc, v float64) float64 { return acc + v }, func(acc, v int64) int64 { return acc + v })
		if err != nil {
			return nil, err
		}
		n := float64(len(vals))
		switch s := sum.(type) {
		case IntValue:
			return RealValue{Value: float64(s.Value) / n}, nil
		case RealValue:
			return RealValue{Value: s.Value / n}, nil
		}
		return nil, fmt.Errorf("eval: avg over non-numeric values")
	default:
		return nil, fmt.Errorf("eval: unknown aggregate %q", agg.Fn)
	}
}

func reduceNumeric(vals []Value, foldReal func(acc, v float64) float64, foldInt func(acc, v int64) int64) (Value, error) {
	switch first := vals[0].(type) {
	case IntValue:
		acc := first.Value
		for _, v := range vals[1:] {
			iv, ok := v.(IntValue)
			if !ok {
				return nil, fmt.Errorf("eval: mixed int/real values in aggregate")
			}
			acc = foldInt(acc, iv.Value)
		}
		return IntValue{Value: acc}, nil
	case RealValue:
		acc := first.Value
		for _, v := range vals[1:] {
			rv, ok := v.(RealValue)
			if !ok {
				return nil, fmt.Errorf("eval: mixed int/real values in aggregate")
			}
			acc = foldReal(acc, rv.Value)
		}
		return RealValue{Value: acc}, nil
	default:
		return nil, fmt.Errorf("eval: aggregate over non-numeric value (%T)", vals[0])
	}
}

// reduceCompare finds the extreme value of vals; want=-1 for min, +1 for max.
func reduceCompare(vals []Value, want int) (Value, error) {
	best := vals[0]
	for _, v := range vals[1:] {
		c, err := compareValues(v, best)
		if err != nil {
			return nil, err
		}
		if (want < 0 && c < 0) || (want > 0 && c > 0) {
			best = v
		}
	}
	return best, nil
}

func orderRows(rows []*Environment, items []core.FromOrderItem) ([]*Environment, error) {
	type keyed struct {
		env  *Environment
		keys []Value
	}
	ks := make([]keyed, len(rows))
	for i, row := range rows {
		sub := &Evaluator{env: row}
		keys := make([]Value, len(items))
		for j, it := range items {
			v, err := sub.Eval(it.Exp)
			if err != nil {
				return nil, err
			}
			keys[j] = v
		}
		ks[i] = keyed{env: row, keys: keys}
	}

	var sortErr error
	sort.SliceStable(ks, func(i, j int) bool {
		for k, it := range items {
			c, err := compareValues(ks[i].keys[k], ks[j].keys[k])
			if err != nil {
				sortErr = err
				return false
			}
			if c == 0 {
				continue
			}
			if it.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	if sortErr != nil {
		return nil, sortErr
	}

	out := make([]*Environment, len(ks))
	for i, k := range ks {
		out[i] = k.env
	}
	return out, nil
}

// Compare orders two values of the same underlying scalar type. It
// backs order-by and the min/max aggregates (spec §4.5 leaves ordered
// comparison to the host's usual total order on ints/reals/strings),
// and is exported for internal/builtins to implement <, >, <=, >=.
func Compare(a, b Value) (int, error) {
	return compareValues(a, b)
}

func compareValues(a, b Value) (int, error) {
	switch av := a.(type) {
	case IntValue:
		bv, ok := b.(IntValue)
		if !ok {
			return 0, fmt.Errorf("eval: cannot compare int with %T", b)
		}
		switch {
		case av.Value < bv.Value:
			return -1, nil
		case av.Value > bv.Value:
			return 1, nil
		default:
			return 0, nil
		}
	case RealValue:
		bv, ok := b.(RealValue)
		if !ok {
			return 0, fmt.Errorf("eval: cannot compare real with %T", b)
		}
		switch {
		case av.Value < bv.Value:
			return -1, nil
		case av.Value > bv.Value:
			return 1, nil
		default:
			return 0, nil
		}
	case StringValue:
		bv, ok := b.(StringValue)
		if !ok {
			return 0, fmt.Errorf("eval: cannot compare string with %T", b)
		}
		return strings.Compare(av.Value, bv.Value), nil
	case CharValue:
		bv, ok := b.(CharValue)
		if !ok {
			return 0, fmt.Errorf("eval: cannot compare char with %T", b)
		}
		switch {
		case av.Value < bv.Value:
			return -1, nil
		case av.Value > bv.Value:
			return 1, nil
		default:
			return 0, nil
		}
	case BoolValue:
		bv, ok := b.(BoolValue)
		if !ok {
			return 0, fmt.Errorf("eval: cannot compare bool with %T", b)
		}
		if av.Value == bv.Value {
			return 0, nil
		}
		if !av.Value {
			return -1, nil
		}
		return 1, nil
	default:
		return 0, fmt.Errorf("eval: value of type %T has no ordering", a)
	}
}
