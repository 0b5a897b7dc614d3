package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"golang.org/x/term"

	"github.com/sgunigpa/gpacalc/core"
	"github.com/sgunigpa/gpacalc/core/gpa"
)

var (
	isTerminalFunc = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) } // mockable

	errHelp    = errors.New("help provided")
	errAborted = errors.New("aborted")
)

type commandLine struct {
	svc                *gpa.Service
	migrator           migrator
	translator         ut.Translator
	defaultInstitution string
	in                 io.Reader
	out                io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  institutions                   - list the supported institutions")
	fmt.Fprintln(cli.out, "  policy -institution NUS        - show an institution's grade table")
	fmt.Fprintln(cli.out, "  use -institution NUS           - select the institution")
	fmt.Fprintln(cli.out, "  add -credits 4 -grade A [...]  - add a course")
	fmt.Fprintln(cli.out, "  update -id ID [...]            - edit a course")
	fmt.Fprintln(cli.out, "  delete -id ID                  - remove a course")
	fmt.Fprintln(cli.out, "  list                           - list the courses")
	fmt.Fprintln(cli.out, "  show                           - show the GPA and credit totals")
	fmt.Fprintln(cli.out, "  clear [-yes]                   - remove every course and the selection")
	fmt.Fprintln(cli.out, "  migrate COMMAND                - run schema migrations (sql storage only)")
	fmt.Fprintln(cli.out, "Every command accepts -json.")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()
	cmdArgs := args[2:]
	switch args[1] {
	case "institutions":
		return cli.institutions(cmdArgs)
	case "policy":
		return cli.policy(cmdArgs)
	case "use":
		return cli.use(ctx, cmdArgs)
	case "add":
		return cli.add(ctx, cmdArgs)
	case "update":
		return cli.update(ctx, cmdArgs)
	case "delete":
		return cli.delete(ctx, cmdArgs)
	case "list":
		return cli.list(ctx, cmdArgs)
	case "show":
		return cli.show(ctx, cmdArgs)
	case "clear":
		return cli.clear(ctx, cmdArgs)
	case "migrate":
		return cli.migrate(cmdArgs)
	default:
		cli.printUsage()
		return errHelp
	}
}

// newFlagSet returns a flag set carrying the shared -json flag.
func (cli *commandLine) newFlagSet(name string) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	asJSON := fs.Bool("json", false, "print JSON instead of a table")
	return fs, asJSON
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

// loadState returns the saved state, falling back to the configured institution.
// The fallback is only saved by the next mutation.
func (cli *commandLine) loadState(ctx context.Context) gpa.State {
	st := cli.svc.Load(ctx)
	if st.Institution == "" && cli.defaultInstitution != "" {
		if inst, err := gpa.ParseInstitution(cli.defaultInstitution); err == nil {
			st.Institution = inst
			st.Result = gpa.Aggregate(gpa.LookupPolicy(inst), st.Courses)
		}
	}
	return st
}

// translate turns validator errors into field errors.
func (cli *commandLine) translate(err error) error {
	return core.TranslateErrors(err, cli.translator)
}

func (cli *commandLine) printf(format string, a ...interface{}) {
	fmt.Fprintf(cli.out, format, a...)
}

func (cli *commandLine) confirm(question string) bool {
	fmt.Fprintf(cli.out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(cli.in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
