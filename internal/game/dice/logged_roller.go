package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with expression, dice values, modifier,
// and total, giving the session layer a complete roll audit trail.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Source returns the underlying randomness source.
func (r *Roller) Source() Source { return r.src }

// Roll evaluates expr and logs the result at debug level.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.log(result)
	return result
}

// RollExpr parses expr and rolls it, logging the result.
//
// Postcondition: returns a RollResult or a parse error; nothing is logged on error.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}

// Evaluate rolls expr with degradation semantics (see Evaluate), logging the
// degraded result at warn level so malformed content surfaces in session logs.
func (r *Roller) Evaluate(expr string) RollResult {
	result := Evaluate(expr, r.src)
	if result.Empty() {
		r.logger.Warn("dice expression degraded to zero", zap.String("expression", expr))
		return result
	}
	r.log(result)
	return result
}

func (r *Roller) log(result RollResult) {
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("rolls", result.Rolls),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
}
