package types

import "fmt"

// UnificationError reports two types that cannot be made equal.
type UnificationError struct {
	Left, Right Type
	Reason      string
}

func (e *UnificationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot unify %s with %s: %s", e.Left, e.Right, e.Reason)
	}
	return fmt.Sprintf("cannot unify %s with %s", e.Left, e.Right)
}

// Unify extends sub so that sub.Apply(t1) and sub.Apply(t2) are the same
// type, or reports why they cannot be. A TUnknown unifies with anything
// and binds nothing, letting inference continue past an earlier failure
// without cascading further errors.
func Unify(t1, t2 Type, sub Substitution, fresh *Fresh) (Substitution, error) {
	t1 = sub.Apply(t1)
	t2 = sub.Apply(t2)

	if _, ok := t1.(*TUnknown); ok {
		return sub, nil
	}
	if _, ok := t2.(*TUnknown); ok {
		return sub, nil
	}

	if v1, ok := t1.(*TVar); ok {
		if v2, ok := t2.(*TVar); ok && v1.Name == v2.Name {
			return sub, nil
		}
		if err := sub.Bind(v1.Name, t2); err != nil {
			return nil, err
		}
		return sub, nil
	}
	if v2, ok := t2.(*TVar); ok {
		if err := sub.Bind(v2.Name, t1); err != nil {
			return nil, err
		}
		return sub, nil
	}

	switch a := t1.(type) {
	case *TCtor:
		b, ok := t2.(*TCtor)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return nil, &UnificationError{Left: t1, Right: t2}
		}
		for i := range a.Args {
			var err error
			sub, err = Unify(a.Args[i], b.Args[i], sub, fresh)
			if err != nil {
				return nil, err
			}
		}
		return sub, nil

	case *TFunc:
		b, ok := t2.(*TFunc)
		if !ok || len(a.Params) != len(b.Params) {
			return nil, &UnificationError{Left: t1, Right: t2}
		}
		for i := range a.Params {
			var err error
			sub, err = Unify(a.Params[i], b.Params[i], sub, fresh)
			if err != nil {
				return nil, err
			}
		}
		return Unify(a.Return, b.Return, sub, fresh)

	case *TTuple:
		b, ok := t2.(*TTuple)
		if !ok || len(a.Elements) != len(b.Elements) {
			return nil, &UnificationError{Left: t1, Right: t2}
		}
		for i := range a.Elements {
			var err error
			sub, err = Unify(a.Elements[i], b.Elements[i], sub, fresh)
			if err != nil {
				return nil, err
			}
		}
		return sub, nil

	case *TRecord:
		b, ok := t2.(*TRecord)
		if !ok {
			return nil, &UnificationError{Left: t1, Right: t2}
		}
		return unifyRecords(a, b, sub, fresh)

	case *TErrorRow:
		b, ok := t2.(*TErrorRow)
		if !ok {
			return nil, &UnificationError{Left: t1, Right: t2}
		}
		return UnifyRows(a, b, sub, fresh)
	}

	return nil, &UnificationError{Left: t1, Right: t2}
}

func unifyRecords(a, b *TRecord, sub Substitution, fresh *Fresh) (Substitution, error) {
	for label, ta := range a.Fields {
		tb, ok := b.Fields[label]
		if !ok {
			if b.Tail == "" {
				return nil, &UnificationError{Left: a, Right: b, Reason: fmt.Sprintf("missing field %q", label)}
			}
			continue
		}
		var err error
		sub, err = Unify(ta, tb, sub, fresh)
		if err != nil {
			return nil, err
		}
	}
	for label, tb := range b.Fields {
		if _, ok := a.Fields[label]; ok {
			continue
		}
		if a.Tail == "" {
			return nil, &UnificationError{Left: a, Right: b, Reason: fmt.Sprintf("missing field %q", label)}
		}
		_ = tb
	}

	switch {
	case a.Tail == "" && b.Tail == "":
		return sub, nil
	case a.Tail != "" && b.Tail == "":
		return sub, sub.Bind(a.Tail, recordOfMissing(b, a))
	case a.Tail == "" && b.Tail != "":
		return sub, sub.Bind(b.Tail, recordOfMissing(a, b))
	case a.Tail == b.Tail:
		return sub, nil
	default:
		shared := fresh.RowVar()
		if err := sub.Bind(a.Tail, recordOfMissingWithTail(b, a, shared)); err != nil {
			return nil, err
		}
		if err := sub.Bind(b.Tail, recordOfMissingWithTail(a, b, shared)); err != nil {
			return nil, err
		}
		return sub, nil
	}
}

// recordOfMissing builds the closed record containing exactly full's
// fields that are absent from sparse.
func recordOfMissing(full, sparse *TRecord) *TRecord {
	return recordOfMissingWithTail(full, sparse, "")
}

func recordOfMissingWithTail(full, sparse *TRecord, tail string) *TRecord {
	fields := map[string]Type{}
	for label, t := range full.Fields {
		if _, ok := sparse.Fields[label]; !ok {
			fields[label] = t
		}
	}
	return &TRecord{Fields: fields, Tail: tail}
}
