package main

import (
	"context"
	"flag"

	"github.com/sgunigpa/gpacalc/core/gpa"
)

func (cli *commandLine) add(ctx context.Context, args []string) error {
	fs, asJSON := cli.newFlagSet("add")
	code := fs.String("code", "", "course code")
	name := fs.String("name", "", "course name")
	credits := fs.Float64("credits", 0, "credit units, in steps of 0.5")
	grade := fs.String("grade", "", "letter grade (defaults to the best grade)")
	passFail := fs.Bool("pf", false, "take the course pass/fail")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	st := cli.loadState(ctx)
	course, err := cli.svc.AddCourse(ctx, &st, gpa.NewCourse{
		Code:       *code,
		Name:       *name,
		Credits:    *credits,
		Grade:      *grade,
		IsPassFail: *passFail,
	})
	if err != nil {
		return cli.translate(err)
	}
	return cli.printCourses(st, []gpa.Course{course}, *asJSON)
}

func (cli *commandLine) update(ctx context.Context, args []string) error {
	fs, asJSON := cli.newFlagSet("update")
	id := fs.String("id", "", "course id")
	code := fs.String("code", "", "course code")
	name := fs.String("name", "", "course name")
	credits := fs.Float64("credits", 0, "credit units, in steps of 0.5")
	grade := fs.String("grade", "", "letter grade")
	passFail := fs.Bool("pf", false, "take the course pass/fail")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *id == "" {
		fs.Usage()
		return errHelp
	}

	// only the flags given on the command line are applied
	var uc gpa.UpdateCourse
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "code":
			uc.Code = code
		case "name":
			uc.Name = name
		case "credits":
			uc.Credits = credits
		case "grade":
			uc.Grade = grade
		case "pf":
			uc.IsPassFail = passFail
		}
	})
	if uc.IsEmpty() {
		fs.Usage()
		return errHelp
	}

	st := cli.loadState(ctx)
	course, err := cli.svc.UpdateCourse(ctx, &st, *id, uc)
	if err != nil {
		return cli.translate(err)
	}
	return cli.printCourses(st, []gpa.Course{course}, *asJSON)
}

func (cli *commandLine) delete(ctx context.Context, args []string) error {
	fs, asJSON := cli.newFlagSet("delete")
	id := fs.String("id", "", "course id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *id == "" {
		fs.Usage()
		return errHelp
	}

	st := cli.loadState(ctx)
	if err := cli.svc.DeleteCourse(ctx, &st, *id); err != nil {
		return err
	}
	return cli.printSummary(cli.svc.Summary(&st), *asJSON)
}

func (cli *commandLine) list(ctx context.Context, args []string) error {
	fs, asJSON := cli.newFlagSet("list")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	st := cli.loadState(ctx)
	return cli.printCourses(st, st.Courses, *asJSON)
}

func (cli *commandLine) show(ctx context.Context, args []string) error {
	fs, asJSON := cli.newFlagSet("show")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	st := cli.loadState(ctx)
	return cli.printSummary(cli.svc.Summary(&st), *asJSON)
}

func (cli *commandLine) clear(ctx context.Context, args []string) error {
	fs, asJSON := cli.newFlagSet("clear")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if !*yes && !cli.confirm("Clear all courses and the selected institution?") {
		return errAborted
	}
	st := cli.loadState(ctx)
	cli.svc.Clear(ctx, &st)
	return cli.printSummary(cli.svc.Summary(&st), *asJSON)
}
