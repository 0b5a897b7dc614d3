package gpa

import (
	"math"
	"strconv"
)

// EarnedCreditFloor is the lowest grade point (D) at which a graded course earns its credits.
const EarnedCreditFloor = 1.0

// Result is derived from a course list; it is recomputed, never edited.
type Result struct {
	Average          float64 `json:"average"`
	CreditsAttempted float64 `json:"credits_attempted"`
	CreditsEarned    float64 `json:"credits_earned"`
}

// Aggregate computes the credit-weighted average and the credit totals of courses.
//
// Pass/fail courses stay out of the average but earn their credits when the underlying
// grade reaches policy.PassFail.MinimumPointsForCredit. Courses whose grade is not in the
// policy are ignored. An empty graded set yields a zero average.
func Aggregate(policy GradingPolicy, courses []Course) Result {
	var totalPoints, totalCredits, exemptCredits, earned float64

	for _, c := range courses {
		points, ok := policy.Points(c.Grade)
		if !ok {
			continue
		}
		if c.IsPassFail {
			exemptCredits += c.Credits
			if points >= policy.PassFail.MinimumPointsForCredit {
				earned += c.Credits
			}
			continue
		}
		totalPoints += points * c.Credits
		totalCredits += c.Credits
		if points >= EarnedCreditFloor {
			earned += c.Credits
		}
	}

	var average float64
	if totalCredits > 0 {
		average = totalPoints / totalCredits
	}
	return Result{
		Average:          Round2(average),
		CreditsAttempted: totalCredits + exemptCredits,
		CreditsEarned:    earned,
	}
}

// Round2 rounds x half-up to 2 decimal places.
// x*100 is first normalised to 9 decimals so that 2.345 (stored as 2.34499999...) gives 2.35.
func Round2(x float64) float64 {
	scaled := x * 100
	if norm, err := strconv.ParseFloat(strconv.FormatFloat(scaled, 'f', 9, 64), 64); err == nil {
		scaled = norm
	}
	return math.Round(scaled) / 100
}

// Classify returns the name of the first band whose MinGPA is <= average.
// bands must be sorted by descending MinGPA.
func Classify(average float64, bands []ClassificationBand) (string, bool) {
	for _, band := range bands {
		if band.MinGPA <= average {
			return band.Name, true
		}
	}
	return "", false
}
