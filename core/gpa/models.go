package gpa

import (
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/sgunigpa/gpacalc/core"
)

// Course is one user-entered course record.
type Course struct {
	ID         string  `json:"id"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Credits    float64 `json:"credits"`
	Grade      string  `json:"grade"`
	IsPassFail bool    `json:"is_pass_fail"`
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Credits    float64 `json:"credits" validate:"gte=0,halfstep"`
	Grade      string  `json:"grade"`
	IsPassFail bool    `json:"is_pass_fail"`
}

// Validate cleans nc, defaults an empty grade to the policy's first grade
// and checks nc against policy.
func (nc *NewCourse) Validate(validate *validator.Validate, policy GradingPolicy) error {
	nc.Code = core.CleanToken(nc.Code)
	nc.Name = core.CleanString(nc.Name)
	nc.Grade = core.CleanToken(nc.Grade)
	if nc.Grade == "" {
		nc.Grade = policy.DefaultGrade()
	}

	if err := validate.Struct(nc); err != nil {
		return err
	}
	return checkGrade(policy, nc.Grade)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// nil fields are left untouched.
type UpdateCourse struct {
	Code       *string  `json:"code"`
	Name       *string  `json:"name"`
	Credits    *float64 `json:"credits"`
	Grade      *string  `json:"grade"`
	IsPassFail *bool    `json:"is_pass_fail"`
}

func (uc UpdateCourse) IsEmpty() bool {
	return uc.Code == nil && uc.Name == nil && uc.Credits == nil && uc.Grade == nil && uc.IsPassFail == nil
}

// Validate checks the provided fields of uc and returns orig with them applied.
// The grade is only checked against policy when it is being changed, so stale
// records (eg. after switching institution) stay editable.
func (uc UpdateCourse) Validate(validate *validator.Validate, policy GradingPolicy, orig Course) (Course, error) {
	nc := NewCourse{
		Code:       orig.Code,
		Name:       orig.Name,
		Credits:    orig.Credits,
		Grade:      orig.Grade,
		IsPassFail: orig.IsPassFail,
	}
	if uc.Code != nil {
		nc.Code = core.CleanToken(*uc.Code)
	}
	if uc.Name != nil {
		nc.Name = core.CleanString(*uc.Name)
	}
	if uc.Credits != nil {
		nc.Credits = *uc.Credits
	}
	if uc.IsPassFail != nil {
		nc.IsPassFail = *uc.IsPassFail
	}
	if uc.Grade != nil {
		nc.Grade = core.CleanToken(*uc.Grade)
	}

	if err := validate.Struct(nc); err != nil {
		return Course{}, err
	}
	if uc.Grade != nil {
		if err := checkGrade(policy, nc.Grade); err != nil {
			return Course{}, err
		}
	}

	return Course{
		ID:         orig.ID,
		Code:       nc.Code,
		Name:       nc.Name,
		Credits:    nc.Credits,
		Grade:      nc.Grade,
		IsPassFail: nc.IsPassFail,
	}, nil
}

// isHalfStep reports whether credits is a finite multiple of 0.5.
func isHalfStep(credits float64) bool {
	if math.IsNaN(credits) || math.IsInf(credits, 0) {
		return false
	}
	return math.Mod(credits*2, 1) == 0
}
