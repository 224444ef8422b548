package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/infer"
	"github.com/workman-lang/workman/internal/solver"
	"github.com/workman-lang/workman/internal/types"
)

func rowOf(labels ...string) *types.TErrorRow {
	cases := map[string]*types.ErrorCase{}
	for _, l := range labels {
		cases[l] = &types.ErrorCase{Label: l}
	}
	return &types.TErrorRow{Cases: cases}
}

func TestSolveSourceSeedsRow(t *testing.T) {
	node := &ast.Lit{}
	row := rowOf("DivByZero")
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{&infer.ConstraintSource{At: node, Row: row}})
	require.Empty(t, res.Diagnostics)
	assert.Equal(t, row, res.RowAt[node])
}

func TestSolveFlowUnionsRows(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{
		&infer.ConstraintSource{At: node, Row: rowOf("DivByZero")},
		&infer.ConstraintFlow{At: node, From: rowOf("Overflow"), To: rowOf("DivByZero")},
	})
	require.Empty(t, res.Diagnostics)
	merged := res.RowAt[node]
	assert.True(t, merged.Cases["DivByZero"] != nil)
	assert.True(t, merged.Cases["Overflow"] != nil)
}

func TestSolveRewriteDischargesHandledCase(t *testing.T) {
	node := &ast.Lit{}
	row := rowOf("DivByZero", "Overflow")
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{
		&infer.ConstraintRewrite{At: node, Row: row, Handled: "DivByZero", Residual: rowOf("Overflow")},
	})
	require.Empty(t, res.Diagnostics)
	assert.Nil(t, res.RowAt[node].Cases["DivByZero"])
	assert.True(t, res.RowAt[node].Cases["Overflow"] != nil)
}

func TestSolveRewriteOfUnknownCaseReportsConflict(t *testing.T) {
	node := &ast.Lit{}
	row := rowOf("DivByZero")
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{
		&infer.ConstraintRewrite{At: node, Row: row, Handled: "NotPresent"},
	})
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "SLV001", string(res.Diagnostics[0].Code))
}

func TestSolveAliasMismatchReportsBoundaryViolation(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{
		&infer.ConstraintAlias{At: node, A: rowOf("DivByZero"), B: rowOf("Overflow")},
	})
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "SLV002", string(res.Diagnostics[0].Code))
}

func TestSolveAliasMatchingRowsNoDiagnostic(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{
		&infer.ConstraintAlias{At: node, A: rowOf("DivByZero"), B: rowOf("DivByZero")},
	})
	assert.Empty(t, res.Diagnostics)
}

func TestSolveAliasNilBCoversAccumulatedRow(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{
		&infer.ConstraintSource{At: node, Row: rowOf("DivByZero")},
		&infer.ConstraintAlias{At: node, A: rowOf("DivByZero", "Overflow")},
	})
	assert.Empty(t, res.Diagnostics)
}

func TestSolveAliasNilBReportsUncoveredAccumulatedCase(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{
		&infer.ConstraintSource{At: node, Row: rowOf("DivByZero", "Overflow")},
		&infer.ConstraintAlias{At: node, A: rowOf("DivByZero")},
	})
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "SLV002", string(res.Diagnostics[0].Code))
}

func TestSolveAliasNilBWithNoAccumulatedRowDefaultsToEmpty(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{
		&infer.ConstraintAlias{At: node, A: rowOf("DivByZero")},
	})
	assert.Empty(t, res.Diagnostics)
}

func TestSolveAnnotationMismatchReportsTypeMismatch(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{
		&infer.Annotation{At: node, Expected: types.Int, Actual: types.Bool},
	})
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "TC001", string(res.Diagnostics[0].Code))
}

func TestSolveAnnotationMatchingTypesNoDiagnostic(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{
		&infer.Annotation{At: node, Expected: types.Int, Actual: types.Int},
	})
	assert.Empty(t, res.Diagnostics)
}

func TestSolveCallMismatchedShapeReportsTypeMismatch(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	callee := &types.TFunc{Params: []types.Type{types.Bool}, Return: types.Int}
	res := s.Solve([]infer.Constraint{
		&infer.Call{At: node, Callee: callee, Args: []types.Type{types.Int}, Result: types.Int},
	})
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "TC001", string(res.Diagnostics[0].Code))
}

func TestSolveCallMatchingShapeNoDiagnostic(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	callee := &types.TFunc{Params: []types.Type{types.Int}, Return: types.Int}
	res := s.Solve([]infer.Constraint{
		&infer.Call{At: node, Callee: callee, Args: []types.Type{types.Int}, Result: types.Int},
	})
	assert.Empty(t, res.Diagnostics)
}

func TestSolveHasFieldMissingFieldReportsTypeMismatch(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	rec := &types.TRecord{Fields: map[string]types.Type{"age": types.Int}, Tail: ""}
	res := s.Solve([]infer.Constraint{
		&infer.HasField{At: node, Record: rec, Field: "name", ResultType: types.Int},
	})
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "TC001", string(res.Diagnostics[0].Code))
}

func TestSolveHasFieldPresentFieldNoDiagnostic(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	rec := &types.TRecord{Fields: map[string]types.Type{"name": types.Int}, Tail: "r"}
	res := s.Solve([]infer.Constraint{
		&infer.HasField{At: node, Record: rec, Field: "name", ResultType: types.Int},
	})
	assert.Empty(t, res.Diagnostics)
}

func TestSolveNumericOnNonIntReportsTypeMismatch(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{
		&infer.Numeric{At: node, Operand: types.Bool},
	})
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "TC001", string(res.Diagnostics[0].Code))
}

func TestSolveNumericOnIntNoDiagnostic(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{
		&infer.Numeric{At: node, Operand: types.Int},
	})
	assert.Empty(t, res.Diagnostics)
}

func TestSolveBooleanOnNonBoolReportsTypeMismatch(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{
		&infer.Boolean{At: node, Operand: types.Int},
	})
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "TC001", string(res.Diagnostics[0].Code))
}

func TestSolveBooleanOnBoolNoDiagnostic(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{
		&infer.Boolean{At: node, Operand: types.Bool},
	})
	assert.Empty(t, res.Diagnostics)
}

func TestSolveBranchJoinDischargingResultSeedsEmptyRow(t *testing.T) {
	node := &ast.Lit{}
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{
		&infer.BranchJoin{At: node, Branches: []types.Type{types.Int, types.Int}, DischargesResult: true},
	})
	require.Empty(t, res.Diagnostics)
	require.NotNil(t, res.RowAt[node])
	assert.Empty(t, res.RowAt[node].Cases)
}

func TestSolveBranchJoinWithCoverageSeedsThatRow(t *testing.T) {
	node := &ast.Lit{}
	row := rowOf("DivByZero")
	s := solver.New(nil)
	res := s.Solve([]infer.Constraint{
		&infer.BranchJoin{At: node, Branches: []types.Type{types.Int}, ErrorRowCoverage: row},
	})
	require.Empty(t, res.Diagnostics)
	assert.Equal(t, row, res.RowAt[node])
}
