package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/education-cost-planner/pkg/constants"
	"github.com/iwvelando/education-cost-planner/pkg/mathutil"
)

// Error is a user-facing validation failure. Its message is safe to render.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NonNegative parses raw as a non-negative number. Blank input returns def.
// Any other failure returns an *Error carrying message.
func NonNegative(field, raw string, def float64, message string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return def, nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, &Error{Field: field, Message: message}
	}
	return value, nil
}

// NYBaseline validates the annual New York living cost.
func NYBaseline(raw string) (float64, error) {
	return NonNegative("ny_living", raw, constants.DefaultNYBaseline,
		fmt.Sprintf("Please enter a valid non-negative number for New York annual living cost "+
			"or leave it blank to use the default %s USD/year.", strconv.FormatFloat(constants.DefaultNYBaseline, 'f', 0, 64)))
}

// InflationPercent validates an annual inflation percentage and returns both
// the percentage and the fractional rate.
func InflationPercent(raw string) (percent, rate float64, err error) {
	percent, err = NonNegative("inflation", raw, constants.DefaultInflationRate*constants.PercentageMultiplier,
		"Please enter a valid non-negative percentage for average cost-of-living "+
			"inflation or leave it blank to use the default 3% per year.")
	if err != nil {
		return 0, 0, err
	}
	return percent, mathutil.PercentToFraction(percent), nil
}

// PolicyLever validates a percentage lever (tuition cut or living subsidy) in
// [0, 100] and returns it as a fraction. Blank input means no lever.
func PolicyLever(field, raw string) (float64, error) {
	percent, err := NonNegative(field, raw, 0,
		fmt.Sprintf("Please enter %s as a percentage between 0 and 100.", strings.ReplaceAll(field, "_", " ")))
	if err != nil {
		return 0, err
	}
	if percent > constants.PercentageMultiplier {
		return 0, &Error{Field: field, Message: fmt.Sprintf("%s cannot exceed 100%%.", strings.ReplaceAll(field, "_", " "))}
	}
	return mathutil.PercentToFraction(percent), nil
}

// TargetAnnual validates an optional target annual cost. A nil result means
// no target was supplied.
func TargetAnnual(raw string) (*float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, err := NonNegative("target_annual", raw, 0,
		"Please enter a valid non-negative target annual cost in USD.")
	if err != nil {
		return nil, err
	}
	return &value, nil
}
