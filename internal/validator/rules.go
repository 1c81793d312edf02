package validator

import "regexp"

type Kind int

const (
	KindInteger Kind = iota
	KindString
)

// FieldRule declares what a single structured field must look like.
// Pattern and MinLen only apply to KindString.
type FieldRule struct {
	Param    string
	Kind     Kind
	Pattern  *regexp.Regexp
	MinLen   int
	Expected string
}

const (
	ParamAge         = "age"
	ParamDateOfVisit = "dateOfVisit"
	ParamTimeOfVisit = "timeOfVisit"
	ParamComments    = "comments"
)

// Rules is evaluated top to bottom; the first violation wins.
var Rules = []FieldRule{
	{
		Param:    ParamAge,
		Kind:     KindInteger,
		Expected: "Use an integer value",
	},
	{
		Param:    ParamDateOfVisit,
		Kind:     KindString,
		Pattern:  regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		Expected: "Use the correct format : YYYY-MM-DD",
	},
	{
		Param:    ParamTimeOfVisit,
		Kind:     KindString,
		Pattern:  regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d$`),
		Expected: "Use the correct format : hh:mm",
	},
	{
		Param:    ParamComments,
		Kind:     KindString,
		MinLen:   4,
		Expected: "Use the correct format : comments must be of length 4",
	},
}

// NamePattern matches two or three space separated alphabetic tokens of at least two letters.
var NamePattern = regexp.MustCompile(`^[A-Za-z]{2,}\s[A-Za-z]{2,}(?:\s[A-Za-z]{2,})?$`)

// RuleFor returns the rule declared for param.
func RuleFor(param string) (FieldRule, bool) {
	for _, r := range Rules {
		if r.Param == param {
			return r, true
		}
	}
	return FieldRule{}, false
}
