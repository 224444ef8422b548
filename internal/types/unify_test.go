package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workman-lang/workman/internal/types"
)

func TestUnifyVarWithConcreteType(t *testing.T) {
	sub := types.Substitution{}
	fresh := types.NewFresh()
	a := &types.TVar{Name: "a"}
	sub, err := types.Unify(a, types.Int, sub, fresh)
	require.NoError(t, err)
	assert.Equal(t, types.Int, sub.Apply(a))
}

func TestUnifyOccursCheckFails(t *testing.T) {
	sub := types.Substitution{}
	fresh := types.NewFresh()
	a := &types.TVar{Name: "a"}
	listOfA := &types.TCtor{Name: "List", Args: []types.Type{a}}
	_, err := types.Unify(a, listOfA, sub, fresh)
	require.Error(t, err)
	var occ *types.OccursCheckError
	require.ErrorAs(t, err, &occ)
}

func TestUnifyFunctionTypes(t *testing.T) {
	sub := types.Substitution{}
	fresh := types.NewFresh()
	a, b := &types.TVar{Name: "a"}, &types.TVar{Name: "b"}
	f1 := &types.TFunc{Params: []types.Type{a}, Return: types.Bool}
	f2 := &types.TFunc{Params: []types.Type{types.Int}, Return: b}
	sub, err := types.Unify(f1, f2, sub, fresh)
	require.NoError(t, err)
	assert.Equal(t, types.Int, sub.Apply(a))
	assert.Equal(t, types.Bool, sub.Apply(b))
}

func TestUnifyCtorArityMismatch(t *testing.T) {
	sub := types.Substitution{}
	fresh := types.NewFresh()
	opt1 := &types.TCtor{Name: "Option", Args: []types.Type{types.Int}}
	opt2 := &types.TCtor{Name: "Option", Args: []types.Type{types.Int, types.Bool}}
	_, err := types.Unify(opt1, opt2, sub, fresh)
	require.Error(t, err)
}

func TestUnifyWithUnknownAlwaysSucceeds(t *testing.T) {
	sub := types.Substitution{}
	fresh := types.NewFresh()
	hole := &types.TUnknown{Provenance: types.InferenceFailure}
	_, err := types.Unify(hole, types.Int, sub, fresh)
	require.NoError(t, err)
	_, err = types.Unify(types.Bool, hole, sub, fresh)
	require.NoError(t, err)
}

func TestUnifyTuplesElementwise(t *testing.T) {
	sub := types.Substitution{}
	fresh := types.NewFresh()
	a := &types.TVar{Name: "a"}
	t1 := &types.TTuple{Elements: []types.Type{types.Int, a}}
	t2 := &types.TTuple{Elements: []types.Type{types.Int, types.String}}
	sub, err := types.Unify(t1, t2, sub, fresh)
	require.NoError(t, err)
	assert.Equal(t, types.String, sub.Apply(a))
}

func TestSubstitutionNormalizeIsIdempotent(t *testing.T) {
	sub := types.Substitution{
		"a": &types.TVar{Name: "b"},
		"b": types.Int,
	}
	norm := sub.Normalize()
	once := norm.Apply(&types.TVar{Name: "a"})
	twice := norm.Normalize().Apply(&types.TVar{Name: "a"})
	assert.Equal(t, once, twice)
	assert.Equal(t, types.Int, once)
}
