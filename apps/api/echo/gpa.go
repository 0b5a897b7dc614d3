package echoapi

import (
	"fmt"
	"net/http"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sgunigpa/gpacalc/core"
	"github.com/sgunigpa/gpacalc/core/gpa"
)

type (
	calculateRequest struct {
		Institution string          `json:"institution" validate:"notblank"`
		Courses     []gpa.NewCourse `json:"courses"`
	}

	calculateResponse struct {
		gpa.Summary
		Courses []gpa.Course `json:"course_list"`
	}
)

type gpaApi struct {
	validate   *validator.Validate
	translator ut.Translator
}

func registerGPAAPI(g *echo.Group, validate *validator.Validate, translator ut.Translator) {
	api := gpaApi{
		validate:   validate,
		translator: translator,
	}

	ig := g.Group("/institutions")
	ig.GET("", api.queryInstitutions)
	ig.GET("/:institution", api.retrievePolicy)

	g.POST("/calculate", api.calculate)
}

// Handlers

func (api *gpaApi) queryInstitutions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, gpa.Policies())
}

func (api *gpaApi) retrievePolicy(ctx echo.Context) error {
	inst, err := gpa.ParseInstitution(ctx.Param("institution"))
	if err != nil {
		return errHttpUnknownInstitution
	}
	return ctx.JSON(http.StatusOK, gpa.LookupPolicy(inst))
}

// calculate evaluates a course list without storing anything.
func (api *gpaApi) calculate(ctx echo.Context) error {
	var data calculateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to calculateRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}
	inst, err := gpa.ParseInstitution(data.Institution)
	if err != nil {
		return errHttpUnknownInstitution
	}
	policy := gpa.LookupPolicy(inst)

	courses := make([]gpa.Course, 0, len(data.Courses))
	var flds []core.FieldError
	for i, nc := range data.Courses {
		if err = nc.Validate(api.validate, policy); err != nil {
			flds = append(flds, api.courseErrors(i, err)...)
			continue
		}
		courses = append(courses, gpa.Course{
			ID:         strconv.Itoa(i + 1),
			Code:       nc.Code,
			Name:       nc.Name,
			Credits:    nc.Credits,
			Grade:      nc.Grade,
			IsPassFail: nc.IsPassFail,
		})
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}

	res := gpa.Aggregate(policy, courses)
	return ctx.JSON(http.StatusOK, calculateResponse{
		Summary: gpa.Summarize(policy, res, len(courses)),
		Courses: courses,
	})
}

// courseErrors prefixes the field errors of the i-th course with its position ("courses.0.grade").
func (api *gpaApi) courseErrors(i int, err error) []core.FieldError {
	vErr, ok := core.TranslateErrors(err, api.translator).(*core.ValidationError)
	if !ok {
		return []core.FieldError{{Field: fmt.Sprintf("courses.%d", i), Error: err.Error()}}
	}
	flds := make([]core.FieldError, 0, len(vErr.Fields))
	for _, f := range vErr.Fields {
		flds = append(flds, core.FieldError{Field: fmt.Sprintf("courses.%d.%s", i, f.Field), Error: f.Error})
	}
	return flds
}
