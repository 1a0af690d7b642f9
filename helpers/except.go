// Except.go: Contains functions to make handling panics less PITA

package helpers

import (
	"fmt"
	"runtime"

	"github.com/getsentry/raven-go"
	"github.com/pkg/errors"
	"github.com/wickstudio/autoresponder/cache"
)

// DEBUG_MODE adds stack traces to recovered panics
var DEBUG_MODE = false

// Recover recover()s, logs the error and reports it to sentry.
// Deferred at the top of every event handler so one bad event cannot stop the bot.
func Recover() {
	err := recover()
	if err != nil {
		reportPanic(err)
	}
}

// RecoverWith is Recover with a callback that is run after the panic was reported
func RecoverWith(cb func(err error)) {
	recovered := recover()
	if recovered != nil {
		err := reportPanic(recovered)
		if cb != nil {
			cb(err)
		}
	}
}

func reportPanic(recovered interface{}) error {
	err, ok := recovered.(error)
	if !ok {
		err = fmt.Errorf("%#v", recovered)
	}

	entry := cache.GetLogger().WithField("module", "except")
	if DEBUG_MODE {
		buf := make([]byte, 1<<16)
		stackSize := runtime.Stack(buf, false)
		entry = entry.WithField("stack", string(buf[0:stackSize]))
	}
	entry.Error("recovered from panic: ", err.Error())

	raven.CaptureError(err, map[string]string{})
	return err
}

// Relax is a helper to reduce if-checks if panicking is allowed
// If $err is nil this is a no-op. Panics otherwise.
func Relax(err error) {
	if err != nil {
		panic(err)
	}
}

// RelaxLog logs $err and reports it to sentry, no-op if $err is nil
func RelaxLog(err error) {
	if err != nil {
		cache.GetLogger().WithField("module", "except").Error(err.Error())
		raven.CaptureError(errors.Cause(err), map[string]string{"error": err.Error()})
	}
}
