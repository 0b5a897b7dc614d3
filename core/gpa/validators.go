package gpa

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/sgunigpa/gpacalc/core"
)

var (
	halfStepTag  = "halfstep"
	halfStepText = "{0} must be a multiple of 0.5"

	// minimum similarity for a grade to be suggested
	suggestMinRatio = .6
)

// InitValidators registers the course validators on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(halfStepTag, halfStepValidation)
	core.RegisterCustomTranslation(validate, translator, halfStepTag, halfStepText)
}

// Custom Validators

// halfStepValidation only allows credit values in 0.5 increments.
func halfStepValidation(fl validator.FieldLevel) bool {
	return isHalfStep(fl.Field().Float())
}

// checkGrade makes sure grade exists in policy.
func checkGrade(policy GradingPolicy, grade string) error {
	if _, ok := policy.Points(grade); ok {
		return nil
	}
	msg := fmt.Sprintf("unknown grade %q for %s", grade, policy.Institution)
	if match, ok := suggestGrade(policy, grade); ok {
		msg += fmt.Sprintf(" (did you mean %q?)", match)
	}
	return core.NewValidationError(nil, core.FieldError{Field: "grade", Error: msg})
}

// suggestGrade returns the grade of policy closest to token.
func suggestGrade(policy GradingPolicy, token string) (string, bool) {
	if token == "" {
		return "", false
	}
	var (
		best      string
		bestRatio float64
	)
	for _, gp := range policy.Grades {
		ratio := difflib.NewMatcher(strings.Split(token, ""), strings.Split(gp.Grade, "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = gp.Grade, ratio
		}
	}
	return best, bestRatio >= suggestMinRatio
}
