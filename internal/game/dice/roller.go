package dice

// Roll evaluates an Expression using the given Source and returns a RollResult.
//
// Precondition: expr must come from Parse (Count >= 1, Sides >= 2); src must be non-nil.
// Postcondition: len(result.Rolls) == expr.Count; each roll is in [1, expr.Sides];
// result.Total() == sum(result.Rolls) + result.Modifier.
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	return RollResult{
		Expression: expr.Raw,
		Rolls:      rolled,
		Modifier:   expr.Modifier,
	}
}

// RollExpr parses expr and rolls it using src in a single call.
//
// Postcondition: returns a RollResult or a parse error.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}

// Evaluate rolls expr, degrading to an empty RollResult when the expression
// is malformed. Combat resolution uses this path: a bad damage expression
// means zero damage, never a failed action.
//
// Postcondition: the returned result is Empty() iff expr failed to parse.
func Evaluate(expr string, src Source) RollResult {
	result, err := RollExpr(expr, src)
	if err != nil {
		return RollResult{Expression: expr}
	}
	return result
}
