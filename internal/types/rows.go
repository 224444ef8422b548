package types

import "fmt"

// RowMismatchError reports two error rows that cannot be unified: a case
// unique to a closed side that the other side has no room to admit.
type RowMismatchError struct {
	Row1, Row2 *TErrorRow
	Label      string
}

func (e *RowMismatchError) Error() string {
	return fmt.Sprintf("error row mismatch: %s has case %q that %s cannot admit", e.Row1, e.Label, e.Row2)
}

// UnifyRows unifies two error rows against sub, returning the extended
// substitution. It follows the same case split on the two rows' tail
// openness used throughout row-polymorphic type systems:
//
//  1. both closed: the label sets must match exactly.
//  2. one closed, one open: the open side's tail absorbs exactly the
//     closed side's unique labels, becoming closed itself.
//  3. both open with the same tail variable: the label sets must already
//     match (the shared tail cannot grow to cover a one-sided label).
//  4. both open with different tail variables: both tails bind to a
//     fresh shared tail, each absorbing the other row's unique labels.
//
// Every common label's payload is unified regardless of tail shape.
func UnifyRows(r1, r2 *TErrorRow, sub Substitution, fresh *Fresh) (Substitution, error) {
	r1 = sub.Apply(r1).(*TErrorRow)
	r2 = sub.Apply(r2).(*TErrorRow)

	common, only1, only2 := partitionCases(r1, r2)

	for _, label := range common {
		c1, c2 := r1.Cases[label], r2.Cases[label]
		var err error
		sub, err = unifyCasePayload(c1, c2, sub, fresh)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case r1.Tail == "" && r2.Tail == "":
		if len(only1) > 0 {
			return nil, &RowMismatchError{Row1: r1, Row2: r2, Label: only1[0]}
		}
		if len(only2) > 0 {
			return nil, &RowMismatchError{Row1: r2, Row2: r1, Label: only2[0]}
		}
		return sub, nil

	case r1.Tail != "" && r2.Tail == "":
		if len(only1) > 0 {
			return nil, &RowMismatchError{Row1: r1, Row2: r2, Label: only1[0]}
		}
		if err := sub.Bind(r1.Tail, rowOf(only2, r2, "")); err != nil {
			return nil, err
		}
		return sub, nil

	case r1.Tail == "" && r2.Tail != "":
		if len(only2) > 0 {
			return nil, &RowMismatchError{Row1: r2, Row2: r1, Label: only2[0]}
		}
		if err := sub.Bind(r2.Tail, rowOf(only1, r1, "")); err != nil {
			return nil, err
		}
		return sub, nil

	case r1.Tail == r2.Tail:
		if len(only1) > 0 {
			return nil, &RowMismatchError{Row1: r1, Row2: r2, Label: only1[0]}
		}
		if len(only2) > 0 {
			return nil, &RowMismatchError{Row1: r2, Row2: r1, Label: only2[0]}
		}
		return sub, nil

	default: // both open, different tail variables
		shared := fresh.RowVar()
		if err := sub.Bind(r1.Tail, rowOf(only2, r2, shared)); err != nil {
			return nil, err
		}
		if err := sub.Bind(r2.Tail, rowOf(only1, r1, shared)); err != nil {
			return nil, err
		}
		return sub, nil
	}
}

func unifyCasePayload(c1, c2 *ErrorCase, sub Substitution, fresh *Fresh) (Substitution, error) {
	if c1.Payload == nil && c2.Payload == nil {
		return sub, nil
	}
	if c1.Payload == nil || c2.Payload == nil {
		return nil, fmt.Errorf("error case %q has a payload on one side but not the other", c1.Label)
	}
	return Unify(c1.Payload, c2.Payload, sub, fresh)
}

// partitionCases splits r1 and r2's labels into those common to both and
// those unique to each side, in a deterministic (sorted) order.
func partitionCases(r1, r2 *TErrorRow) (common, only1, only2 []string) {
	for label := range r1.Cases {
		if _, ok := r2.Cases[label]; ok {
			common = append(common, label)
		} else {
			only1 = append(only1, label)
		}
	}
	for label := range r2.Cases {
		if _, ok := r1.Cases[label]; !ok {
			only2 = append(only2, label)
		}
	}
	sortStrings(common)
	sortStrings(only1)
	sortStrings(only2)
	return common, only1, only2
}

// rowOf builds the error row containing exactly the named labels (taken
// from source's case table) and the given tail.
func rowOf(labels []string, source *TErrorRow, tail string) *TErrorRow {
	cases := map[string]*ErrorCase{}
	for _, l := range labels {
		cases[l] = source.Cases[l]
	}
	return &TErrorRow{Cases: cases, Tail: tail}
}

// UnionRows merges two error rows, used when two branches of a match (or
// two calls in sequence) can each fail with their own cases: the result
// carries every case from both sides. If either row is open, the result
// stays open.
func UnionRows(r1, r2 *TErrorRow) *TErrorRow {
	cases := map[string]*ErrorCase{}
	for k, c := range r1.Cases {
		cases[k] = c
	}
	for k, c := range r2.Cases {
		cases[k] = c
	}
	tail := r1.Tail
	if tail == "" {
		tail = r2.Tail
	}
	return &TErrorRow{Cases: cases, Tail: tail}
}
