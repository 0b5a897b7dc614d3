package logsvc

import (
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/sgunigpa/gpacalc/core"
)

var exitFunc = os.Exit // mockable

// RollbarLogger prints logfmt lines and reports them to Rollbar when enabled.
type RollbarLogger struct {
	kit    log.Logger
	report bool
}

var _ core.Logger = (*RollbarLogger)(nil)

// NewRollbarLogger configures the global Rollbar client from conf. Reporting is disabled in
// debug mode or without a token.
func NewRollbarLogger(w io.Writer, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)

	report := !conf.Debug && conf.RollbarToken != ""
	rollbar.SetEnabled(report)

	kit := log.NewLogfmtLogger(log.NewSyncWriter(w))
	kit = log.With(kit, "ts", log.DefaultTimestampUTC, "app", conf.AppName)
	if !conf.Debug {
		kit = level.NewFilter(kit, level.AllowInfo())
	}
	return &RollbarLogger{kit: kit, report: report}
}

// NewNopLogger discards everything.
func NewNopLogger() *RollbarLogger {
	return &RollbarLogger{kit: log.NewNopLogger()}
}

// expected fmt: msg | error, map[string]interface{}, anything else
func (l RollbarLogger) prepare(msg string, args []interface{}) ([]interface{}, []interface{}) {
	keyvals := []interface{}{"msg", msg}
	reportArgs := []interface{}{msg}
	extras := make(map[string]interface{})

	for i, arg := range args {
		switch a := arg.(type) {
		case error:
			keyvals = append(keyvals, "err", a)
			reportArgs = append(reportArgs, a)
		case map[string]interface{}:
			for k, v := range a {
				keyvals = append(keyvals, k, v)
				extras[k] = v
			}
		default:
			key := fmt.Sprintf("arg%d", i)
			keyvals = append(keyvals, key, a)
			extras[key] = a
		}
	}
	if len(extras) > 0 {
		reportArgs = append(reportArgs, extras)
	}
	return keyvals, reportArgs
}

func (l RollbarLogger) log(lvl func(log.Logger) log.Logger, report func(...interface{}), msg string, args []interface{}) {
	keyvals, reportArgs := l.prepare(msg, args)
	if l.report {
		report(reportArgs...)
	}
	_ = lvl(l.kit).Log(keyvals...)
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.log(level.Debug, rollbar.Debug, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.log(level.Info, rollbar.Info, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.log(level.Warn, rollbar.Warning, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.log(level.Error, rollbar.Error, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(level.Error, rollbar.Critical, msg, args)
	if l.report {
		rollbar.Wait()
	}
	exitFunc(1)
}
