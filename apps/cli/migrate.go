package main

import "errors"

var errNoMigrations = errors.New("migrate needs a sql storage driver (postgres, pgx or sqlite)")

// migrator is implemented by the stores that keep a schema.
type migrator interface {
	Migrate(command string, args ...string) error
}

func (cli *commandLine) migrate(args []string) error {
	if len(args) == 0 {
		cli.printMigrateUsage()
		return errHelp
	}
	if cli.migrator == nil {
		return errNoMigrations
	}
	return cli.migrator.Migrate(args[0], args[1:]...)
}

func (cli *commandLine) printMigrateUsage() {
	cli.printf("Usage: migrate COMMAND [VERSION]\n")
	cli.printf("  up | up-by-one | up-to VERSION | down | down-to VERSION | redo | reset | status | version\n")
}
