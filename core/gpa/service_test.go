package gpa

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgunigpa/gpacalc/core"
)

type repoMock struct {
	st      *State
	loadErr error
	saveErr error
	saves   int
}

func (r *repoMock) LoadState(context.Context) (State, error) {
	if r.loadErr != nil {
		return State{}, r.loadErr
	}
	if r.st == nil {
		return State{}, core.ErrKeyNotFound
	}
	return *r.st, nil
}

func (r *repoMock) SaveState(_ context.Context, st State) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	st.Courses = append([]Course(nil), st.Courses...)
	r.st = &st
	return nil
}

type logEntry struct {
	level string
	msg   string
}

type loggerMock struct {
	entries []logEntry
}

var _ core.Logger = (*loggerMock)(nil)

func (l *loggerMock) log(level, msg string) { l.entries = append(l.entries, logEntry{level, msg}) }

func (l *loggerMock) Debug(msg string, _ ...interface{}) { l.log("debug", msg) }
func (l *loggerMock) Info(msg string, _ ...interface{})  { l.log("info", msg) }
func (l *loggerMock) Warn(msg string, _ ...interface{})  { l.log("warn", msg) }
func (l *loggerMock) Error(msg string, _ ...interface{}) { l.log("error", msg) }
func (l *loggerMock) Fatal(msg string, _ ...interface{}) { l.log("fatal", msg) }

func newTestService(repo *repoMock) (*Service, *loggerMock) {
	logger := &loggerMock{}
	return NewService(repo, newValidate(), logger), logger
}

func sequentialIDs(t *testing.T) {
	t.Helper()
	var n int
	orig := NewID
	NewID = func() string {
		n++
		return fmt.Sprintf("c%d", n)
	}
	t.Cleanup(func() { NewID = orig })
}

func TestService_Load(t *testing.T) {
	saved := &State{
		Institution: NUS,
		Courses: []Course{
			{ID: "c1", Credits: 4, Grade: "A"},
			{ID: "c2", Credits: 4, Grade: "B"},
		},
		Result: Result{Average: 1.23}, // stale
	}

	tests := []struct {
		name     string
		repo     *repoMock
		want     State
		wantWarn bool
	}{
		{name: "nothing saved", repo: &repoMock{}, want: State{}},
		{name: "unreadable", repo: &repoMock{loadErr: errors.New("corrupt")}, want: State{}, wantWarn: true},
		{
			name: "recomputes result",
			repo: &repoMock{st: saved},
			want: State{
				Institution: NUS,
				Courses:     saved.Courses,
				Result:      Result{Average: 4.25, CreditsAttempted: 8, CreditsEarned: 8},
			},
		},
		{
			name: "drops unknown institution",
			repo: &repoMock{st: &State{Institution: "SUTD", Courses: saved.Courses}},
			want: State{Courses: saved.Courses},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, logger := newTestService(tt.repo)
			got := svc.Load(context.Background())
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantWarn, len(logger.entries) > 0)
			assert.Zero(t, tt.repo.saves)
		})
	}
}

func TestService_courses(t *testing.T) {
	sequentialIDs(t)
	ctx := context.Background()
	repo := &repoMock{}
	svc, logger := newTestService(repo)

	var st State
	_, err := svc.AddCourse(ctx, &st, NewCourse{Credits: 4, Grade: "A"})
	assert.Equal(t, ErrNoInstitution, err)

	require.NoError(t, svc.SetInstitution(ctx, &st, NUS))
	assert.Equal(t, ErrUnknownInstitution, svc.SetInstitution(ctx, &st, "SUTD"))
	assert.Equal(t, NUS, st.Institution)

	c1, err := svc.AddCourse(ctx, &st, NewCourse{Code: "cs1101s", Credits: 4, Grade: "a"})
	require.NoError(t, err)
	assert.Equal(t, Course{ID: "c1", Code: "CS1101S", Credits: 4, Grade: "A"}, c1)

	c2, err := svc.AddCourse(ctx, &st, NewCourse{Code: "MA1521", Credits: 4, Grade: "B"})
	require.NoError(t, err)
	assert.Equal(t, Result{Average: 4.25, CreditsAttempted: 8, CreditsEarned: 8}, st.Result)

	_, err = svc.AddCourse(ctx, &st, NewCourse{Credits: 4, Grade: "Q"})
	assert.True(t, core.IsValidation(err))
	assert.Len(t, st.Courses, 2)

	yes := true
	c2, err = svc.UpdateCourse(ctx, &st, c2.ID, UpdateCourse{IsPassFail: &yes})
	require.NoError(t, err)
	assert.True(t, c2.IsPassFail)
	assert.Equal(t, Result{Average: 5, CreditsAttempted: 8, CreditsEarned: 8}, st.Result)

	_, err = svc.UpdateCourse(ctx, &st, "nope", UpdateCourse{IsPassFail: &yes})
	assert.Equal(t, ErrCourseNotFound, err)

	require.NoError(t, svc.DeleteCourse(ctx, &st, c1.ID))
	assert.Equal(t, []Course{c2}, st.Courses)
	assert.Equal(t, Result{Average: 0, CreditsAttempted: 4, CreditsEarned: 4}, st.Result)
	assert.Equal(t, ErrCourseNotFound, svc.DeleteCourse(ctx, &st, c1.ID))

	// every successful mutation is saved
	assert.Equal(t, 5, repo.saves)
	assert.Equal(t, st, *repo.st)
	assert.Empty(t, logger.entries)
}

func TestService_SetInstitution_recalculates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(&repoMock{})

	st := State{
		Institution: NUS,
		Courses: []Course{
			{ID: "c1", Credits: 4, Grade: "A-"},
			{ID: "c2", Credits: 4, Grade: "B+"},
		},
	}
	svc.Recalculate(ctx, &st)
	assert.Equal(t, 4.25, st.Result.Average)

	require.NoError(t, svc.SetInstitution(ctx, &st, SMU))
	assert.Len(t, st.Courses, 2)
	assert.Equal(t, Result{Average: 3.5, CreditsAttempted: 8, CreditsEarned: 8}, st.Result)
}

func TestService_bestEffortSave(t *testing.T) {
	sequentialIDs(t)
	ctx := context.Background()
	repo := &repoMock{saveErr: errors.New("disk full")}
	svc, logger := newTestService(repo)

	var st State
	require.NoError(t, svc.SetInstitution(ctx, &st, NTU))
	c, err := svc.AddCourse(ctx, &st, NewCourse{Credits: 3, Grade: "B+"})
	require.NoError(t, err)

	assert.Equal(t, []Course{c}, st.Courses)
	assert.Equal(t, Result{Average: 4, CreditsAttempted: 3, CreditsEarned: 3}, st.Result)
	assert.Equal(t, 2, repo.saves)
	require.Len(t, logger.entries, 2)
	assert.Equal(t, logEntry{"error", "saving state failed"}, logger.entries[0])
}

func TestService_Clear(t *testing.T) {
	ctx := context.Background()
	repo := &repoMock{}
	svc, _ := newTestService(repo)

	st := State{Institution: NTU, Courses: []Course{{ID: "c1", Credits: 3, Grade: "A"}}}
	svc.Recalculate(ctx, &st)
	svc.Clear(ctx, &st)

	assert.Equal(t, State{}, st)
	assert.Equal(t, State{}, *repo.st)
}

func TestService_Summary(t *testing.T) {
	svc, _ := newTestService(&repoMock{})

	st := State{Courses: []Course{{ID: "c1"}}}
	assert.Equal(t, Summary{Courses: 1}, svc.Summary(&st))

	st = State{
		Institution: NUS,
		Courses:     []Course{{ID: "c1", Credits: 4, Grade: "A"}},
		Result:      Result{Average: 5, CreditsAttempted: 4, CreditsEarned: 4},
	}
	assert.Equal(t, Summary{
		Institution:    NUS,
		GPALabel:       "CAP",
		CreditLabel:    "MCs",
		Scale:          5,
		Result:         st.Result,
		Classification: "Honours (Highest Distinction)",
		Courses:        1,
	}, svc.Summary(&st))
}
