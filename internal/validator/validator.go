package validator

import (
	"math"
	"strconv"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"visitors/internal/models"
)

// Validate checks values against Rules in declaration order. A param that
// is missing from values is checked as nil and therefore fails its rule.
func Validate(values map[string]any) error {
	for _, rule := range Rules {
		value := values[rule.Param]
		if !rule.check(value) {
			return &models.FieldValidationError{
				Value:    value,
				Param:    rule.Param,
				Expected: rule.Expected,
			}
		}
	}
	return nil
}

func ValidateParameters(age, dateOfVisit, timeOfVisit, comments any) error {
	return Validate(map[string]any{
		ParamAge:         age,
		ParamDateOfVisit: dateOfVisit,
		ParamTimeOfVisit: timeOfVisit,
		ParamComments:    comments,
	})
}

func ValidateFullName(fullName any) error {
	s, ok := fullName.(string)
	if !ok || !NamePattern.MatchString(s) {
		return &models.NameValidationError{Value: fullName}
	}
	return nil
}

// ValidateCandidate runs every check a candidate must pass before it may be
// persisted: structured fields, then the visitor name, then the assistor name.
func ValidateCandidate(c *models.Candidate) error {
	if err := ValidateParameters(c.Age, c.DateOfVisit, c.TimeOfVisit, c.Comments); err != nil {
		return err
	}
	if err := ValidateFullName(c.FullName); err != nil {
		return err
	}
	return ValidateFullName(c.AssistorName)
}

func (r FieldRule) check(value any) bool {
	switch r.Kind {
	case KindInteger:
		_, ok := IntegerValue(value)
		return ok
	case KindString:
		s, ok := value.(string)
		if !ok {
			return false
		}
		if r.MinLen > 0 && utf8.RuneCountInString(s) < r.MinLen {
			return false
		}
		if r.Pattern != nil && !r.Pattern.MatchString(s) {
			return false
		}
		return true
	}
	return false
}

// IntegerValue reports whether v holds an integral number and returns it.
// Strings never qualify, even when they spell a number.
func IntegerValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int(f), true
}
