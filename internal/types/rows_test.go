package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workman-lang/workman/internal/types"
)

func row(tail string, labels ...string) *types.TErrorRow {
	cases := map[string]*types.ErrorCase{}
	for _, l := range labels {
		cases[l] = &types.ErrorCase{Label: l}
	}
	return &types.TErrorRow{Cases: cases, Tail: tail}
}

func TestUnifyRowsBothClosedExactMatch(t *testing.T) {
	sub := types.Substitution{}
	fresh := types.NewFresh()
	r1 := row("", "DivByZero", "Overflow")
	r2 := row("", "DivByZero", "Overflow")
	_, err := types.UnifyRows(r1, r2, sub, fresh)
	require.NoError(t, err)
}

func TestUnifyRowsBothClosedMismatch(t *testing.T) {
	sub := types.Substitution{}
	fresh := types.NewFresh()
	r1 := row("", "DivByZero")
	r2 := row("", "Overflow")
	_, err := types.UnifyRows(r1, r2, sub, fresh)
	require.Error(t, err)
	var mismatch *types.RowMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestUnifyRowsOpenAbsorbsClosedExtras(t *testing.T) {
	sub := types.Substitution{}
	fresh := types.NewFresh()
	open := row("e", "DivByZero")
	closed := row("", "DivByZero", "Overflow")
	sub, err := types.UnifyRows(open, closed, sub, fresh)
	require.NoError(t, err)
	resolved := sub.Apply(&types.TVar{Name: "e"})
	errRow, ok := resolved.(*types.TErrorRow)
	require.True(t, ok)
	assert.True(t, errRow.Cases["Overflow"] != nil)
	assert.Empty(t, errRow.Tail)
}

func TestUnifyRowsOpenWithExtraLabelAgainstClosedFails(t *testing.T) {
	sub := types.Substitution{}
	fresh := types.NewFresh()
	open := row("e", "DivByZero", "NotInClosed")
	closed := row("", "DivByZero")
	_, err := types.UnifyRows(open, closed, sub, fresh)
	require.Error(t, err)
}

func TestUnifyRowsSameOpenTailRequiresMatchingLabels(t *testing.T) {
	sub := types.Substitution{}
	fresh := types.NewFresh()
	r1 := row("e", "DivByZero")
	r2 := row("e", "DivByZero")
	_, err := types.UnifyRows(r1, r2, sub, fresh)
	require.NoError(t, err)

	r3 := row("e", "DivByZero")
	r4 := row("e", "Overflow")
	_, err = types.UnifyRows(r3, r4, sub, fresh)
	require.Error(t, err)
}

func TestUnifyRowsDifferentOpenTailsShareFreshTail(t *testing.T) {
	sub := types.Substitution{}
	fresh := types.NewFresh()
	r1 := row("e1", "DivByZero")
	r2 := row("e2", "Overflow")
	sub, err := types.UnifyRows(r1, r2, sub, fresh)
	require.NoError(t, err)

	resolved1 := sub.Apply(&types.TVar{Name: "e1"}).(*types.TErrorRow)
	resolved2 := sub.Apply(&types.TVar{Name: "e2"}).(*types.TErrorRow)
	assert.Equal(t, resolved1.Tail, resolved2.Tail)
	assert.NotEmpty(t, resolved1.Tail)
	assert.True(t, resolved1.Cases["Overflow"] != nil)
	assert.True(t, resolved2.Cases["DivByZero"] != nil)
}

func TestUnionRowsMergesCasesAndStaysOpenIfEitherIs(t *testing.T) {
	r1 := row("e", "DivByZero")
	r2 := row("", "Overflow")
	merged := types.UnionRows(r1, r2)
	assert.True(t, merged.Cases["DivByZero"] != nil)
	assert.True(t, merged.Cases["Overflow"] != nil)
	assert.Equal(t, "e", merged.Tail)
}
