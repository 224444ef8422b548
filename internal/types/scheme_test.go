package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workman-lang/workman/internal/types"
)

func TestGeneralizeQuantifiesOverFreeVarsNotInEnv(t *testing.T) {
	a := &types.TVar{Name: "a"}
	fn := &types.TFunc{Params: []types.Type{a}, Return: a}
	scheme := types.Generalize(nil, fn, false)
	assert.Equal(t, []string{"a"}, scheme.Quantifiers)
}

func TestGeneralizeExcludesVarsFreeInEnv(t *testing.T) {
	a := &types.TVar{Name: "a"}
	env := []types.Type{&types.TCtor{Name: "List", Args: []types.Type{a}}}
	fn := &types.TFunc{Params: []types.Type{a}, Return: types.Int}
	scheme := types.Generalize(env, fn, false)
	assert.Empty(t, scheme.Quantifiers)
}

func TestGeneralizeMonomorphicForcesNoQuantifiers(t *testing.T) {
	a := &types.TVar{Name: "a"}
	scheme := types.Generalize(nil, a, true)
	assert.Empty(t, scheme.Quantifiers)
	assert.Equal(t, a, scheme.Body)
}

func TestInstantiateProducesFreshVarsEachTime(t *testing.T) {
	fresh := types.NewFresh()
	scheme := &types.Scheme{
		Quantifiers: []string{"a"},
		Body:        &types.TFunc{Params: []types.Type{&types.TVar{Name: "a"}}, Return: &types.TVar{Name: "a"}},
	}
	i1 := scheme.Instantiate(fresh)
	i2 := scheme.Instantiate(fresh)
	assert.NotEqual(t, i1, i2, "two instantiations must not share a type variable")
}

func TestADTEnvRejectsDuplicateConstructor(t *testing.T) {
	env := types.NewADTEnv()
	require.NoError(t, env.Declare(&types.ADTInfo{
		Name: "Option", Params: []string{"a"},
		Ctors: []types.CtorInfo{
			{Name: "Some", Fields: []types.Type{&types.TVar{Name: "a"}}, Tag: 0},
			{Name: "None", Tag: 1},
		},
	}))
	err := env.Declare(&types.ADTInfo{
		Name: "Maybe",
		Ctors: []types.CtorInfo{{Name: "Some", Tag: 0}},
	})
	require.Error(t, err)
}

func TestADTEnvCtorLookup(t *testing.T) {
	env := types.NewADTEnv()
	require.NoError(t, env.Declare(&types.ADTInfo{
		Name: "Option", Params: []string{"a"},
		Ctors: []types.CtorInfo{
			{Name: "Some", Fields: []types.Type{&types.TVar{Name: "a"}}, Tag: 0},
			{Name: "None", Tag: 1},
		},
	}))
	owner, info, ok := env.Ctor("Some")
	require.True(t, ok)
	assert.Equal(t, "Option", owner.Name)
	assert.Equal(t, 0, info.Tag)

	arity, ok := env.Arity("None")
	require.True(t, ok)
	assert.Equal(t, 0, arity)
}
