package gpa

import "fmt"

// GradePoint maps a letter grade onto its point value.
type GradePoint struct {
	Grade  string  `json:"grade"`
	Points float64 `json:"points"`
}

// PassFailRule describes the S/U (or P/F) option of a policy.
type PassFailRule struct {
	Label string `json:"label"`
	// MinimumPointsForCredit is the lowest underlying grade point that still earns credits.
	MinimumPointsForCredit float64 `json:"minimum_points_for_credit"`
}

// ClassificationBand is a named tier reached at MinGPA and above.
type ClassificationBand struct {
	Name   string  `json:"name"`
	MinGPA float64 `json:"min_gpa"`
}

// GradingPolicy is the grading configuration of an institution.
// Grades are ordered from best to worst; Classifications by descending MinGPA.
type GradingPolicy struct {
	Institution     Institution          `json:"institution"`
	Name            string               `json:"name"`
	Scale           float64              `json:"scale"`
	Grades          []GradePoint         `json:"grades"`
	CreditLabel     string               `json:"credit_label"`
	CodeLabel       string               `json:"code_label"`
	GPALabel        string               `json:"gpa_label"`
	PassFail        PassFailRule         `json:"pass_fail"`
	Classifications []ClassificationBand `json:"classifications,omitempty"`
}

// Points returns the point value of grade, false if the policy has no such grade.
func (p GradingPolicy) Points(grade string) (float64, bool) {
	for _, gp := range p.Grades {
		if gp.Grade == grade {
			return gp.Points, true
		}
	}
	return 0, false
}

// DefaultGrade is the grade new courses start with: the first entry of the table.
func (p GradingPolicy) DefaultGrade() string {
	if len(p.Grades) == 0 {
		return ""
	}
	return p.Grades[0].Grade
}

func (p GradingPolicy) GradeNames() []string {
	names := make([]string, 0, len(p.Grades))
	for _, gp := range p.Grades {
		names = append(names, gp.Grade)
	}
	return names
}

// Classify returns the classification reached by average, if any.
func (p GradingPolicy) Classify(average float64) (string, bool) {
	return Classify(average, p.Classifications)
}

func (p GradingPolicy) clone() GradingPolicy {
	c := p
	c.Grades = append([]GradePoint(nil), p.Grades...)
	if p.Classifications != nil {
		c.Classifications = append([]ClassificationBand(nil), p.Classifications...)
	}
	return c
}

// validate checks the invariants the aggregation relies on.
func (p GradingPolicy) validate() error {
	if len(p.Grades) == 0 {
		return fmt.Errorf("%s: empty grade table", p.Institution)
	}
	seen := make(map[string]bool, len(p.Grades))
	for _, gp := range p.Grades {
		if seen[gp.Grade] {
			return fmt.Errorf("%s: duplicate grade %q", p.Institution, gp.Grade)
		}
		seen[gp.Grade] = true
		if gp.Points < 0 || gp.Points > p.Scale {
			return fmt.Errorf("%s: grade %q out of scale (%.2f)", p.Institution, gp.Grade, gp.Points)
		}
	}
	for i := 1; i < len(p.Classifications); i++ {
		if p.Classifications[i].MinGPA >= p.Classifications[i-1].MinGPA {
			return fmt.Errorf("%s: classification %q not in descending order", p.Institution, p.Classifications[i].Name)
		}
	}
	return nil
}
