package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/sgunigpa/gpacalc/core"
	"github.com/sgunigpa/gpacalc/core/gpa"
	logsvc "github.com/sgunigpa/gpacalc/services/logger"
	"github.com/sgunigpa/gpacalc/storage"
	"github.com/sgunigpa/gpacalc/storage/staterepo"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(os.Stderr, conf)

	store, closeStore, err := storage.Open(context.Background(), conf.Storage)
	if err != nil {
		logger.Fatal("opening storage failed", err)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	gpa.InitValidators(validate, translator)

	cli := commandLine{
		svc:                gpa.NewService(staterepo.NewRepository(store, conf.Storage.Key), validate, logger),
		translator:         translator,
		defaultInstitution: conf.CLI.DefaultInstitution,
		in:                 os.Stdin,
		out:                os.Stdout,
	}
	if m, ok := store.(migrator); ok {
		cli.migrator = m
	}
	err = cli.run(os.Args)
	if cErr := closeStore(); cErr != nil {
		logger.Error("closing storage failed", cErr)
	}
	if err != nil {
		if err != errHelp {
			printError(err)
		}
		os.Exit(1)
	}
}

func printError(err error) {
	if vErr, ok := err.(*core.ValidationError); ok && vErr.Err == nil {
		for _, f := range vErr.Fields {
			fmt.Fprintf(os.Stderr, "error: %s: %s\n", f.Field, f.Error)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "error: %s\n", err)
}
