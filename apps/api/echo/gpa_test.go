package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgunigpa/gpacalc/core"
	"github.com/sgunigpa/gpacalc/core/gpa"
	logsvc "github.com/sgunigpa/gpacalc/services/logger"
	"github.com/sgunigpa/gpacalc/tests"
)

func setup(t *testing.T) *Server {
	t.Helper()
	validate, translator := testutil.NewValidate()
	return NewServer(Deps{
		Conf:           &core.Config{AppName: "SG Uni GPA", TestMode: true},
		Logger:         logsvc.NewNopLogger(),
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData != nil {
		assert.JSONEq(t, string(tt.wantData), rec.Body.String())
	}
}

func Test_home(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to SG Uni GPA API!", rec.Body.String())
}

func Test_gpaApi_institutions(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{name: "list", path: "/v1/institutions", wantCode: http.StatusOK, wantData: marshallObj(t, gpa.Policies())},
		{name: "list: trailing slash", path: "/v1/institutions/", wantCode: http.StatusOK, wantData: marshallObj(t, gpa.Policies())},
		{name: "policy", path: "/v1/institutions/nus", wantCode: http.StatusOK, wantData: marshallObj(t, gpa.LookupPolicy(gpa.NUS))},
		{name: "policy: SMU", path: "/v1/institutions/SMU", wantCode: http.StatusOK, wantData: marshallObj(t, gpa.LookupPolicy(gpa.SMU))},
		{
			name: "policy: unknown", path: "/v1/institutions/sutd", wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Error: "unknown institution"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_gpaApi_calculate(t *testing.T) {
	app := setup(t)

	nusCourses := []gpa.Course{
		{ID: "1", Code: "CS1101S", Credits: 4, Grade: "A"},
		{ID: "2", Code: "MA1521", Credits: 4, Grade: "B"},
		{ID: "3", Code: "GEA1000", Credits: 4, Grade: "D", IsPassFail: true},
	}

	tests := []httpTest{
		{
			name: "NUS",
			body: []byte(`{"institution": "nus", "courses": [
				{"code": "cs1101s", "credits": 4, "grade": "A"},
				{"code": "MA1521", "credits": 4, "grade": "b"},
				{"code": "GEA1000", "credits": 4, "grade": "D", "is_pass_fail": true}
			]}`),
			wantCode: http.StatusOK,
			wantData: marshallObj(t, calculateResponse{
				Summary: gpa.Summary{
					Institution:    gpa.NUS,
					GPALabel:       "CAP",
					CreditLabel:    "MCs",
					Scale:          5,
					Result:         gpa.Result{Average: 4.25, CreditsAttempted: 12, CreditsEarned: 8},
					Classification: "Honours (Distinction)",
					Courses:        3,
				},
				Courses: nusCourses,
			}),
		},
		{
			name:     "no courses",
			body:     []byte(`{"institution": "NTU"}`),
			wantCode: http.StatusOK,
			wantData: marshallObj(t, calculateResponse{
				Summary: gpa.Summary{Institution: gpa.NTU, GPALabel: "GPA", CreditLabel: "AUs", Scale: 5},
				Courses: []gpa.Course{},
			}),
		},
		{
			name:     "default grade",
			body:     []byte(`{"institution": "SMU", "courses": [{"credits": 1}]}`),
			wantCode: http.StatusOK,
			wantData: marshallObj(t, calculateResponse{
				Summary: gpa.Summary{
					Institution: gpa.SMU, GPALabel: "GPA", CreditLabel: "CUs", Scale: 4,
					Result:  gpa.Result{Average: 4, CreditsAttempted: 1, CreditsEarned: 1},
					Courses: 1,
				},
				Courses: []gpa.Course{{ID: "1", Credits: 1, Grade: "A+"}},
			}),
		},
		{
			name:     "no institution",
			body:     []byte(`{"courses": []}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"institution": "this field cannot be blank"}`),
		},
		{
			name:     "unknown institution",
			body:     []byte(`{"institution": "SUTD"}`),
			wantCode: http.StatusNotFound,
			wantData: marshallObj(t, httpErr{Error: "unknown institution"}),
		},
		{
			name: "invalid courses",
			body: []byte(`{"institution": "NUS", "courses": [
				{"credits": 4, "grade": "A"},
				{"credits": 2.25, "grade": "B"},
				{"credits": 4, "grade": "B++"}
			]}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{
				"courses.1.credits": "credits must be a multiple of 0.5",
				"courses.2.grade": "unknown grade \"B++\" for NUS (did you mean \"B+\"?)"
			}`),
		},
		{name: "malformed", body: []byte(`{"institution": `), wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/calculate", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_gpaApi_calculate_negativeCredits(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodPost, "/v1/calculate", []byte(`{"institution": "NUS", "courses": [{"credits": -4}]}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var flds map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &flds))
	assert.Contains(t, flds, "courses.0.credits")
}

func Test_notFound(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/v2/lol")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marshallObj(t, httpErr{Error: "Not Found"})}, rec)
}
