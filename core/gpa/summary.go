package gpa

// Summary is a Result dressed with the labels of its policy.
type Summary struct {
	Institution    Institution `json:"institution,omitempty"`
	GPALabel       string      `json:"gpa_label,omitempty"`
	CreditLabel    string      `json:"credit_label,omitempty"`
	Scale          float64     `json:"scale,omitempty"`
	Result         Result      `json:"result"`
	Classification string      `json:"classification,omitempty"`
	Courses        int         `json:"courses"`
}

func Summarize(policy GradingPolicy, res Result, courses int) Summary {
	s := Summary{
		Institution: policy.Institution,
		GPALabel:    policy.GPALabel,
		CreditLabel: policy.CreditLabel,
		Scale:       policy.Scale,
		Result:      res,
		Courses:     courses,
	}
	s.Classification, _ = policy.Classify(res.Average)
	return s
}
