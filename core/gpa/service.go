package gpa

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/sgunigpa/gpacalc/core"
)

var (
	NewID = func() string { return uuid.New().String() } // mockable

	// errors
	ErrCourseNotFound = errors.New("course not found")
	ErrNoInstitution  = errors.New("no institution selected")
)

// State is the caller-owned calculator state: the selected institution, the course
// list and the result last computed from them.
type State struct {
	Institution Institution `json:"institution"`
	Courses     []Course    `json:"courses"`
	Result      Result      `json:"result"`
}

// Policy returns the grading policy of the selected institution.
func (st *State) Policy() (GradingPolicy, bool) {
	if !st.Institution.Valid() {
		return GradingPolicy{}, false
	}
	return LookupPolicy(st.Institution), true
}

func (st *State) indexOf(id string) int {
	for i, c := range st.Courses {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Course returns the course with the given id.
func (st *State) Course(id string) (Course, error) {
	idx := st.indexOf(id)
	if idx < 0 {
		return Course{}, ErrCourseNotFound
	}
	return st.Courses[idx], nil
}

type (
	// Repository persists a State; implementations may fail, the Service never relies on them.
	Repository interface {
		// LoadState returns core.ErrKeyNotFound when nothing was saved yet.
		LoadState(ctx context.Context) (State, error)
		SaveState(ctx context.Context, st State) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
		logger   core.Logger
	}
)

func NewService(repo Repository, validate *validator.Validate, logger core.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validate,
		logger:   logger,
	}
}

// Load returns the persisted state, or an empty one if there is none or it cannot be read.
func (svc *Service) Load(ctx context.Context) State {
	st, err := svc.repo.LoadState(ctx)
	if err != nil {
		if errors.Cause(err) != core.ErrKeyNotFound {
			svc.logger.Warn("discarding unreadable state", errors.Wrap(err, "loading state"))
		}
		return State{}
	}
	if !st.Institution.Valid() {
		st.Institution = ""
	}
	svc.recalculate(&st)
	return st
}

func (svc *Service) SetInstitution(ctx context.Context, st *State, inst Institution) error {
	if !inst.Valid() {
		return ErrUnknownInstitution
	}
	st.Institution = inst
	svc.commit(ctx, st)
	return nil
}

func (svc *Service) AddCourse(ctx context.Context, st *State, nc NewCourse) (Course, error) {
	policy, ok := st.Policy()
	if !ok {
		return Course{}, ErrNoInstitution
	}
	if err := nc.Validate(svc.validate, policy); err != nil {
		return Course{}, err
	}

	course := Course{
		ID:         NewID(),
		Code:       nc.Code,
		Name:       nc.Name,
		Credits:    nc.Credits,
		Grade:      nc.Grade,
		IsPassFail: nc.IsPassFail,
	}
	st.Courses = append(st.Courses, course)
	svc.commit(ctx, st)
	return course, nil
}

func (svc *Service) UpdateCourse(ctx context.Context, st *State, id string, uc UpdateCourse) (Course, error) {
	idx := st.indexOf(id)
	if idx < 0 {
		return Course{}, ErrCourseNotFound
	}
	policy, ok := st.Policy()
	if !ok {
		return Course{}, ErrNoInstitution
	}

	course, err := uc.Validate(svc.validate, policy, st.Courses[idx])
	if err != nil {
		return Course{}, err
	}
	st.Courses[idx] = course
	svc.commit(ctx, st)
	return course, nil
}

func (svc *Service) DeleteCourse(ctx context.Context, st *State, id string) error {
	idx := st.indexOf(id)
	if idx < 0 {
		return ErrCourseNotFound
	}
	st.Courses = append(st.Courses[:idx:idx], st.Courses[idx+1:]...)
	svc.commit(ctx, st)
	return nil
}

// Recalculate recomputes and saves the result of st.
func (svc *Service) Recalculate(ctx context.Context, st *State) Result {
	svc.commit(ctx, st)
	return st.Result
}

// Clear resets st and saves the empty state.
func (svc *Service) Clear(ctx context.Context, st *State) {
	*st = State{}
	svc.commit(ctx, st)
}

// Summary describes the result of st for display.
func (svc *Service) Summary(st *State) Summary {
	policy, ok := st.Policy()
	if !ok {
		return Summary{Result: st.Result, Courses: len(st.Courses)}
	}
	return Summarize(policy, st.Result, len(st.Courses))
}

func (svc *Service) recalculate(st *State) {
	policy, ok := st.Policy()
	if !ok {
		st.Result = Result{}
		return
	}
	st.Result = Aggregate(policy, st.Courses)
}

// commit recalculates st, then saves it. Saving is best-effort: failures are only logged.
func (svc *Service) commit(ctx context.Context, st *State) {
	svc.recalculate(st)
	if err := svc.repo.SaveState(ctx, *st); err != nil {
		svc.logger.Error("saving state failed", errors.Wrap(err, "saving state"))
	}
}
