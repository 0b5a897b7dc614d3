package main

import (
	"context"

	"github.com/sgunigpa/gpacalc/core/gpa"
)

func (cli *commandLine) institutions(args []string) error {
	fs, asJSON := cli.newFlagSet("institutions")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	policies := gpa.Policies()
	if cli.jsonOutput(*asJSON) {
		return cli.printJSON(policies)
	}
	return cli.printInstitutions(policies)
}

func (cli *commandLine) policy(args []string) error {
	fs, asJSON := cli.newFlagSet("policy")
	instName := fs.String("institution", "", "NUS, NTU or SMU")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *instName == "" {
		fs.Usage()
		return errHelp
	}

	inst, err := gpa.ParseInstitution(*instName)
	if err != nil {
		return err
	}
	policy := gpa.LookupPolicy(inst)
	if cli.jsonOutput(*asJSON) {
		return cli.printJSON(policy)
	}
	return cli.printPolicy(policy)
}

func (cli *commandLine) use(ctx context.Context, args []string) error {
	fs, asJSON := cli.newFlagSet("use")
	instName := fs.String("institution", "", "NUS, NTU or SMU")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *instName == "" {
		fs.Usage()
		return errHelp
	}

	inst, err := gpa.ParseInstitution(*instName)
	if err != nil {
		return err
	}
	st := cli.loadState(ctx)
	if err = cli.svc.SetInstitution(ctx, &st, inst); err != nil {
		return err
	}
	return cli.printSummary(cli.svc.Summary(&st), *asJSON)
}
