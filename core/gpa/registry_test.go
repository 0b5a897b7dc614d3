package gpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPolicy(t *testing.T) {
	fivePoint := map[string]float64{
		"A+": 5.0, "A": 5.0, "A-": 4.5, "B+": 4.0, "B": 3.5, "B-": 3.0,
		"C+": 2.5, "C": 2.0, "D+": 1.5, "D": 1.0, "F": 0.0,
	}

	for _, inst := range []Institution{NUS, NTU} {
		policy := LookupPolicy(inst)
		assert.Equal(t, inst, policy.Institution)
		assert.Equal(t, 5.0, policy.Scale)
		assert.Equal(t, 2.0, policy.PassFail.MinimumPointsForCredit)
		require.Len(t, policy.Grades, len(fivePoint))
		for grade, want := range fivePoint {
			got, ok := policy.Points(grade)
			assert.True(t, ok, "%s: missing grade %s", inst, grade)
			assert.Equal(t, want, got, "%s: grade %s", inst, grade)
		}
	}

	nus := LookupPolicy(NUS)
	assert.Equal(t, "MCs", nus.CreditLabel)
	assert.Equal(t, "CAP", nus.GPALabel)
	require.Len(t, nus.Classifications, 5)
	assert.Equal(t, ClassificationBand{Name: "Pass", MinGPA: 2.0}, nus.Classifications[4])

	ntu := LookupPolicy(NTU)
	assert.Equal(t, "AUs", ntu.CreditLabel)
	assert.Empty(t, ntu.Classifications)

	smu := LookupPolicy(SMU)
	assert.Equal(t, 4.0, smu.Scale)
	assert.Equal(t, []string{"A+", "A", "A-", "B+", "B", "B-", "C+", "C", "D+", "D", "F"}, smu.GradeNames())
}

func TestLookupPolicy_unknown(t *testing.T) {
	assert.Panics(t, func() { LookupPolicy("MIT") })
}

func TestLookupPolicy_immutable(t *testing.T) {
	policy := LookupPolicy(NUS)
	policy.Grades[0].Points = 0
	policy.Classifications[0].MinGPA = 0

	fresh := LookupPolicy(NUS)
	assert.Equal(t, 5.0, fresh.Grades[0].Points)
	assert.Equal(t, 4.5, fresh.Classifications[0].MinGPA)

	// NTU shares the NUS grade table
	assert.Equal(t, 5.0, LookupPolicy(NTU).Grades[0].Points)
}

func TestPolicies_valid(t *testing.T) {
	policies := Policies()
	require.Len(t, policies, 3)
	for _, policy := range policies {
		assert.NoError(t, policy.validate())
		assert.Equal(t, "A+", policy.DefaultGrade())
	}
}

func TestGradingPolicy_validate(t *testing.T) {
	tests := []struct {
		name    string
		policy  GradingPolicy
		wantErr bool
	}{
		{name: "empty table", policy: GradingPolicy{Institution: "X", Scale: 4}, wantErr: true},
		{
			name: "duplicate grade",
			policy: GradingPolicy{Institution: "X", Scale: 4, Grades: []GradePoint{
				{Grade: "A", Points: 4}, {Grade: "A", Points: 3},
			}},
			wantErr: true,
		},
		{
			name: "out of scale",
			policy: GradingPolicy{Institution: "X", Scale: 4, Grades: []GradePoint{
				{Grade: "A", Points: 4.3},
			}},
			wantErr: true,
		},
		{
			name: "ascending bands",
			policy: GradingPolicy{
				Institution:     "X",
				Scale:           4,
				Grades:          []GradePoint{{Grade: "A", Points: 4}},
				Classifications: []ClassificationBand{{Name: "Pass", MinGPA: 2}, {Name: "Honours", MinGPA: 3}},
			},
			wantErr: true,
		},
		{
			name: "valid",
			policy: GradingPolicy{
				Institution:     "X",
				Scale:           4,
				Grades:          []GradePoint{{Grade: "A", Points: 4}, {Grade: "F", Points: 0}},
				Classifications: []ClassificationBand{{Name: "Honours", MinGPA: 3}, {Name: "Pass", MinGPA: 2}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.policy.validate(); (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseInstitution(t *testing.T) {
	tests := []struct {
		in      string
		want    Institution
		wantErr error
	}{
		{in: "NUS", want: NUS},
		{in: " ntu ", want: NTU},
		{in: "Smu", want: SMU},
		{in: "", wantErr: ErrUnknownInstitution},
		{in: "MIT", wantErr: ErrUnknownInstitution},
	}
	for _, tt := range tests {
		got, err := ParseInstitution(tt.in)
		if err != tt.wantErr {
			t.Errorf("ParseInstitution(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseInstitution(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
