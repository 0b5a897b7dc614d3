package gpa

import "fmt"

// fivePointGrades is shared by the 5.0-scale institutions.
var fivePointGrades = []GradePoint{
	{Grade: "A+", Points: 5.0},
	{Grade: "A", Points: 5.0},
	{Grade: "A-", Points: 4.5},
	{Grade: "B+", Points: 4.0},
	{Grade: "B", Points: 3.5},
	{Grade: "B-", Points: 3.0},
	{Grade: "C+", Points: 2.5},
	{Grade: "C", Points: 2.0},
	{Grade: "D+", Points: 1.5},
	{Grade: "D", Points: 1.0},
	{Grade: "F", Points: 0.0},
}

var registry = map[Institution]GradingPolicy{
	NUS: {
		Institution: NUS,
		Name:        "National University of Singapore",
		Scale:       5.0,
		Grades:      fivePointGrades,
		CreditLabel: "MCs",
		CodeLabel:   "Module Code",
		GPALabel:    "CAP",
		PassFail: PassFailRule{
			Label:                  "S/U Option",
			MinimumPointsForCredit: 2.0, // C and above = S
		},
		Classifications: []ClassificationBand{
			{Name: "Honours (Highest Distinction)", MinGPA: 4.5},
			{Name: "Honours (Distinction)", MinGPA: 4.0},
			{Name: "Honours (Merit)", MinGPA: 3.5},
			{Name: "Honours", MinGPA: 3.0},
			{Name: "Pass", MinGPA: 2.0},
		},
	},
	NTU: {
		Institution: NTU,
		Name:        "Nanyang Technological University",
		Scale:       5.0,
		Grades:      fivePointGrades,
		CreditLabel: "AUs",
		CodeLabel:   "Course Code",
		GPALabel:    "GPA",
		PassFail: PassFailRule{
			Label:                  "P/F Option",
			MinimumPointsForCredit: 2.0, // C and above = Pass
		},
	},
	SMU: {
		Institution: SMU,
		Name:        "Singapore Management University",
		Scale:       4.0,
		Grades: []GradePoint{
			{Grade: "A+", Points: 4.0},
			{Grade: "A", Points: 4.0},
			{Grade: "A-", Points: 3.7},
			{Grade: "B+", Points: 3.3},
			{Grade: "B", Points: 3.0},
			{Grade: "B-", Points: 2.7},
			{Grade: "C+", Points: 2.3},
			{Grade: "C", Points: 2.0},
			{Grade: "D+", Points: 1.3},
			{Grade: "D", Points: 1.0},
			{Grade: "F", Points: 0.0},
		},
		CreditLabel: "CUs",
		CodeLabel:   "Course Code",
		GPALabel:    "GPA",
		PassFail: PassFailRule{
			Label:                  "P/F Option",
			MinimumPointsForCredit: 2.0,
		},
	},
}

func init() {
	for _, inst := range Institutions() {
		policy, ok := registry[inst]
		if !ok {
			panic(fmt.Sprintf("gpa: no grading policy for %s", inst))
		}
		if err := policy.validate(); err != nil {
			panic("gpa: " + err.Error())
		}
	}
}

// LookupPolicy returns the grading policy of inst.
// inst must be one of the Institution constants; anything else panics.
func LookupPolicy(inst Institution) GradingPolicy {
	policy, ok := registry[inst]
	if !ok {
		panic(fmt.Sprintf("gpa: LookupPolicy(%q): %v", string(inst), ErrUnknownInstitution))
	}
	return policy.clone()
}

// Policies returns every registered policy in display order.
func Policies() []GradingPolicy {
	policies := make([]GradingPolicy, 0, len(registry))
	for _, inst := range Institutions() {
		policies = append(policies, LookupPolicy(inst))
	}
	return policies
}
