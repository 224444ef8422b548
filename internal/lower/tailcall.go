package lower

import "github.com/workman-lang/workman/internal/mir"

// rewriteTailCalls turns fn's trailing self-call, if it has one, into a
// loop continuation instead of an ordinary call. It only looks at tail
// position: the function's own top-level Result, and recursively each
// arm of any IfElse that itself sits in tail position. A self-call
// anywhere else (as an operand of Prim, nested inside a non-tail arm,
// passed as an argument) stays an ordinary mir.Call; fn.SelfRecursive
// still wraps its caller-side invocation in a loop, but that loop only
// ever runs once for a function with no tail-recursive arm, since
// nothing inside it ever reaches a Continue.
func rewriteTailCalls(fn *mir.Func) {
	instrs, result, cont := rewriteTailBranch(fn.Body, fn.Result, fn.Name, len(fn.Params))
	fn.Body = instrs
	fn.Result = result
	fn.Continue = cont
}

func rewriteTailBranch(instrs []mir.Instr, result, selfName string, arity int) ([]mir.Instr, string, []string) {
	if len(instrs) == 0 {
		return instrs, result, nil
	}
	last := instrs[len(instrs)-1]
	if last.Dest() != result {
		return instrs, result, nil
	}

	switch v := last.(type) {
	case *mir.IfElse:
		v.ThenInstrs, v.ThenResult, v.ThenContinue = rewriteTailBranch(v.ThenInstrs, v.ThenResult, selfName, arity)
		v.ElseInstrs, v.ElseResult, v.ElseContinue = rewriteTailBranch(v.ElseInstrs, v.ElseResult, selfName, arity)
		return instrs, result, nil
	case *mir.Call:
		if v.Func == selfName && len(v.Args) == arity {
			return instrs[:len(instrs)-1], "", v.Args
		}
	}
	return instrs, result, nil
}
