package staterepo

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/sgunigpa/gpacalc/core"
	"github.com/sgunigpa/gpacalc/core/gpa"
)

// DefaultKey is the key the state document is stored under when none is configured.
const DefaultKey = "sgunigpa-data"

var ErrCorruptState = errors.New("corrupt state document")

type (
	document struct {
		University null.String `json:"university"`
		Courses    []course    `json:"courses"`
		Calculated calculated  `json:"calculated"`
	}

	course struct {
		ID         string  `json:"id"`
		Code       string  `json:"code"`
		Name       string  `json:"name"`
		Credits    float64 `json:"credits"`
		Grade      string  `json:"grade"`
		IsPassFail bool    `json:"isPassFail"`
	}

	calculated struct {
		GPA                   float64 `json:"gpa"`
		TotalCreditsAttempted float64 `json:"totalCreditsAttempted"`
		TotalCreditsEarned    float64 `json:"totalCreditsEarned"`
	}
)

// Repository stores the calculator state as a single JSON document in a KV store.
type Repository struct {
	store core.KVStore
	key   string
}

var _ gpa.Repository = (*Repository)(nil)

func NewRepository(store core.KVStore, key string) *Repository {
	if key == "" {
		key = DefaultKey
	}
	return &Repository{store: store, key: key}
}

func (repo *Repository) LoadState(ctx context.Context) (gpa.State, error) {
	blob, err := repo.store.Get(ctx, repo.key)
	if err != nil {
		return gpa.State{}, errors.Wrapf(err, "loading %s", repo.key)
	}
	return decode(blob)
}

func (repo *Repository) SaveState(ctx context.Context, st gpa.State) error {
	blob, err := encode(st)
	if err != nil {
		return err
	}
	return errors.Wrapf(repo.store.Set(ctx, repo.key, blob), "saving %s", repo.key)
}

func encode(st gpa.State) ([]byte, error) {
	doc := document{
		Courses: make([]course, 0, len(st.Courses)),
		Calculated: calculated{
			GPA:                   st.Result.Average,
			TotalCreditsAttempted: st.Result.CreditsAttempted,
			TotalCreditsEarned:    st.Result.CreditsEarned,
		},
	}
	if st.Institution.Valid() {
		doc.University = null.StringFrom(st.Institution.String())
	}
	for _, c := range st.Courses {
		doc.Courses = append(doc.Courses, course(c))
	}

	blob, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "encoding state")
	}
	return blob, nil
}

// decode reads a state document. An unknown university is read as no selection.
func decode(blob []byte) (gpa.State, error) {
	var doc document
	if err := json.Unmarshal(blob, &doc); err != nil {
		return gpa.State{}, errors.Wrap(ErrCorruptState, err.Error())
	}

	var st gpa.State
	if doc.University.Valid {
		if inst, err := gpa.ParseInstitution(doc.University.String); err == nil {
			st.Institution = inst
		}
	}
	if len(doc.Courses) > 0 {
		st.Courses = make([]gpa.Course, 0, len(doc.Courses))
		for _, c := range doc.Courses {
			st.Courses = append(st.Courses, gpa.Course(c))
		}
	}
	st.Result = gpa.Result{
		Average:          doc.Calculated.GPA,
		CreditsAttempted: doc.Calculated.TotalCreditsAttempted,
		CreditsEarned:    doc.Calculated.TotalCreditsEarned,
	}
	return st, nil
}
