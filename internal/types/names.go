package types

import "fmt"

// Rename returns a copy of t with its free variables replaced by the
// conventional single-letter diagnostic names T, U, V, W, X, Y, T1, U1,
// ..., assigned in first-occurrence order so that two reads of the same
// type print identically.
func Rename(t Type) Type {
	names := map[string]string{}
	next := 0
	assign := func(name string) string {
		if n, ok := names[name]; ok {
			return n
		}
		letter := rune('T' + next%6)
		suffix := next / 6
		n := string(letter)
		if suffix > 0 {
			n = fmt.Sprintf("%s%d", n, suffix)
		}
		names[name] = n
		next++
		return n
	}
	var walk func(Type) Type
	walk = func(t Type) Type {
		switch v := t.(type) {
		case *TVar:
			return &TVar{Name: assign(v.Name)}
		case *TCtor:
			if len(v.Args) == 0 {
				return v
			}
			args := make([]Type, len(v.Args))
			for i, a := range v.Args {
				args[i] = walk(a)
			}
			return &TCtor{Name: v.Name, Args: args}
		case *TFunc:
			params := make([]Type, len(v.Params))
			for i, p := range v.Params {
				params[i] = walk(p)
			}
			return &TFunc{Params: params, Return: walk(v.Return)}
		case *TTuple:
			elems := make([]Type, len(v.Elements))
			for i, e := range v.Elements {
				elems[i] = walk(e)
			}
			return &TTuple{Elements: elems}
		case *TRecord:
			fields := map[string]Type{}
			for k, f := range v.Fields {
				fields[k] = walk(f)
			}
			tail := v.Tail
			if tail != "" {
				tail = assign(tail)
			}
			return &TRecord{Fields: fields, Tail: tail}
		case *TErrorRow:
			cases := map[string]*ErrorCase{}
			for k, c := range v.Cases {
				var payload Type
				if c.Payload != nil {
					payload = walk(c.Payload)
				}
				cases[k] = &ErrorCase{Label: c.Label, Payload: payload}
			}
			tail := v.Tail
			if tail != "" {
				tail = assign(tail)
			}
			return &TErrorRow{Cases: cases, Tail: tail}
		default:
			return t
		}
	}
	return walk(t)
}
