package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/sgunigpa/gpacalc/core/gpa"
)

// jsonOutput reports whether to print JSON: when asked to or when stdout is not a terminal.
func (cli *commandLine) jsonOutput(asJSON bool) bool {
	return asJSON || !isTerminalFunc()
}

func (cli *commandLine) printJSON(v interface{}) error {
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (cli *commandLine) newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
}

func formatCredits(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}

func (cli *commandLine) printInstitutions(policies []gpa.GradingPolicy) error {
	w := cli.newTable()
	fmt.Fprintln(w, "CODE\tNAME\tSCALE\tAVERAGE\tCREDITS")
	for _, p := range policies {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%s\n", p.Institution, p.Name, p.Scale, p.GPALabel, p.CreditLabel)
	}
	return w.Flush()
}

func (cli *commandLine) printPolicy(p gpa.GradingPolicy) error {
	w := cli.newTable()
	fmt.Fprintf(w, "%s (%s), %s out of %.1f\n\n", p.Name, p.Institution, p.GPALabel, p.Scale)
	fmt.Fprintln(w, "GRADE\tPOINTS")
	for _, gp := range p.Grades {
		fmt.Fprintf(w, "%s\t%.1f\n", gp.Grade, gp.Points)
	}
	fmt.Fprintf(w, "\n%s: credits earned from %.1f points\n", p.PassFail.Label, p.PassFail.MinimumPointsForCredit)
	if len(p.Classifications) > 0 {
		fmt.Fprintln(w, "\nCLASSIFICATION\tMIN "+p.GPALabel)
		for _, band := range p.Classifications {
			fmt.Fprintf(w, "%s\t%.2f\n", band.Name, band.MinGPA)
		}
	}
	return w.Flush()
}

func (cli *commandLine) printCourses(st gpa.State, courses []gpa.Course, asJSON bool) error {
	if courses == nil {
		courses = []gpa.Course{}
	}
	if cli.jsonOutput(asJSON) {
		return cli.printJSON(courses)
	}

	codeLabel, creditLabel, pfLabel := "CODE", "CREDITS", "PASS/FAIL"
	if policy, ok := st.Policy(); ok {
		codeLabel, creditLabel, pfLabel = policy.CodeLabel, policy.CreditLabel, policy.PassFail.Label
	}
	w := cli.newTable()
	fmt.Fprintf(w, "ID\t%s\tNAME\t%s\tGRADE\t%s\n", codeLabel, creditLabel, pfLabel)
	for _, c := range courses {
		pf := "no"
		if c.IsPassFail {
			pf = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Code, c.Name, formatCredits(c.Credits), c.Grade, pf)
	}
	return w.Flush()
}

func (cli *commandLine) printSummary(s gpa.Summary, asJSON bool) error {
	if cli.jsonOutput(asJSON) {
		return cli.printJSON(s)
	}

	w := cli.newTable()
	if s.Institution == "" {
		fmt.Fprintln(w, "No institution selected.")
		fmt.Fprintf(w, "Courses:\t%d\n", s.Courses)
		return w.Flush()
	}
	fmt.Fprintf(w, "Institution:\t%s\n", s.Institution)
	fmt.Fprintf(w, "%s:\t%.2f / %.2f\n", s.GPALabel, s.Result.Average, s.Scale)
	if s.Classification != "" {
		fmt.Fprintf(w, "Classification:\t%s\n", s.Classification)
	}
	fmt.Fprintf(w, "%s attempted:\t%s\n", s.CreditLabel, formatCredits(s.Result.CreditsAttempted))
	fmt.Fprintf(w, "%s earned:\t%s\n", s.CreditLabel, formatCredits(s.Result.CreditsEarned))
	fmt.Fprintf(w, "Courses:\t%d\n", s.Courses)
	return w.Flush()
}
