package linear

import (
	"strconv"
	"strings"

	"github.com/YuminosukeSato/regpipe/pkg/errors"
)

// Option configures a LinearRegression.
type Option func(*LinearRegression)

// WithFitIntercept sets whether to calculate the intercept
func WithFitIntercept(fit bool) Option {
	return func(lr *LinearRegression) {
		lr.fitIntercept = fit
	}
}

// WithNormalize standardises the features before solving. Coefficients are
// reported on the original scale.
func WithNormalize(normalize bool) Option {
	return func(lr *LinearRegression) {
		lr.normalize = normalize
	}
}

// WithCopyX sets whether to copy X matrix
func WithCopyX(copy bool) Option {
	return func(lr *LinearRegression) {
		lr.copyX = copy
	}
}

// WithPositive clips negative coefficients to zero after solving
func WithPositive(positive bool) Option {
	return func(lr *LinearRegression) {
		lr.positive = positive
	}
}

// GetParams returns the parameters of the model
func (lr *LinearRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"fit_intercept": lr.fitIntercept,
		"normalize":     lr.normalize,
		"copy_X":        lr.copyX,
		"positive":      lr.positive,
	}
}

// SetParams sets the parameters of the model. Keys match case-insensitively,
// since viper lowercases map keys read from config files and env.
// Unknown keys and values that are not booleans fail with a ValidationError
// and leave the model unchanged.
func (lr *LinearRegression) SetParams(params map[string]interface{}) error {
	next := *lr
	for key, raw := range params {
		var target *bool
		switch strings.ToLower(key) {
		case "fit_intercept":
			target = &next.fitIntercept
		case "normalize":
			target = &next.normalize
		case "copy_x":
			target = &next.copyX
		case "positive":
			target = &next.positive
		default:
			return errors.NewValidationError(key, "unknown parameter for "+Name, raw)
		}
		val, err := toBool(key, raw)
		if err != nil {
			return err
		}
		*target = val
	}
	lr.fitIntercept = next.fitIntercept
	lr.normalize = next.normalize
	lr.copyX = next.copyX
	lr.positive = next.positive
	return nil
}

// toBool accepts booleans and their string forms, which is what env
// variables produce.
func toBool(key string, raw interface{}) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, errors.NewValidationError(key, "must be a boolean", raw)
		}
		return b, nil
	default:
		return false, errors.NewValidationError(key, "must be a boolean", raw)
	}
}
