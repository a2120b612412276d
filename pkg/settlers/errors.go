package settlers

import (
	"errors"
	"fmt"
)

// ErrUnknownAction is returned when a payload names an action outside the
// vocabulary.
var ErrUnknownAction = errors.New("unknown action")

// RuleError reports an action rejected by the rules engine. The state is
// guaranteed untouched when one is returned.
type RuleError struct {
	Action ActionType
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("illegal %s: %s", e.Action, e.Reason)
}

func ruleErr(action ActionType, format string, args ...any) error {
	return &RuleError{Action: action, Reason: fmt.Sprintf(format, args...)}
}

// IsRuleError reports whether err is a rules rejection (as opposed to a
// malformed request or an internal failure).
func IsRuleError(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}
