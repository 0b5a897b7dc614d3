package testutil

import (
	"context"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/sgunigpa/gpacalc/core"
	"github.com/sgunigpa/gpacalc/core/gpa"
	logsvc "github.com/sgunigpa/gpacalc/services/logger"
	"github.com/sgunigpa/gpacalc/storage/kvstore/memkv"
	"github.com/sgunigpa/gpacalc/storage/staterepo"
)

// NewValidate returns a validator with every custom tag registered.
func NewValidate() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	gpa.InitValidators(validate, translator)
	return validate, translator
}

// NewService returns a service saving to an in-memory store, and that store's repository.
func NewService() (*gpa.Service, *staterepo.Repository) {
	validate, _ := NewValidate()
	repo := staterepo.NewRepository(memkv.Open(), "")
	return gpa.NewService(repo, validate, logsvc.NewNopLogger()), repo
}

// SaveState stores st as if a previous run had left it behind.
func SaveState(t *testing.T, repo *staterepo.Repository, st gpa.State) {
	t.Helper()
	if err := repo.SaveState(context.Background(), st); err != nil {
		t.Fatalf("SaveState() failed: %v", err)
	}
}

// Course builds a graded course.
func Course(id, code string, credits float64, grade string) gpa.Course {
	return gpa.Course{ID: id, Code: code, Credits: credits, Grade: grade}
}

// PassFailCourse builds a course taken pass/fail.
func PassFailCourse(id, code string, credits float64, grade string) gpa.Course {
	c := Course(id, code, credits, grade)
	c.IsPassFail = true
	return c
}
