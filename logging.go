package sqlfmt

import (
	"os"

	"github.com/sirupsen/logrus"
)

// debugEnabled is looked up once at package init, gating a verbose tracing
// path instead of paying a LookupEnv per call.
var _, debugEnabled = os.LookupEnv("SQLFMT_DEBUG")

// log is the package-wide structured logger. Callers that want sqlfmt's
// trace output folded into their own logging pipeline can replace it with
// SetLogger.
var log logrus.FieldLogger = newDefaultLogger()

func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	if debugEnabled {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return l
}

// SetLogger replaces the package-wide logger, e.g. with one that carries a
// request ID field stamped by cmd/sqlfmt.
func SetLogger(l logrus.FieldLogger) { log = l }

func debugf(format string, args ...any) {
	if !debugEnabled {
		return
	}
	log.Debugf(format, args...)
}
