// Package logging provides the async channel-queued logger shared by the
// timing, param, and assembler packages.
package logging

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"
)

type stringer interface {
	String() string
}

type logPair struct {
	logFn func(...any)
	obj   string
	msg   string
}

const logSize = 1000

var logCh = make(chan logPair, logSize)

func objToString(obj any) (objStr string) {
	if obj == nil {
		objStr = "NIL"
	} else if stringerObj, ok := obj.(stringer); ok {
		objStr = stringerObj.String()
	} else if objStr, ok = obj.(string); ok {
	} else {
		objStr = reflect.TypeOf(obj).Name()
	}
	return
}

// Init configures the logrus formatter/level and starts the async drain
// goroutine. Call once at process start.
func Init(lvl logrus.Level) {
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		PadLevelText:    true,
		TimestampFormat: "2006/02/01 15:04:05",
	})

	go func() {
		sb := new(bytes.Buffer)
		for lp := range logCh {
			if len(lp.obj) > 20 {
				lp.obj = lp.obj[:20]
			}
			sb.WriteString(fmt.Sprintf("|%20s|%-100s", lp.obj, lp.msg))
			lp.logFn(sb.String())
			sb.Reset()
		}
	}()
}

// Trace logs at trace level, keyed by object's String() (or type name).
func Trace(object any, message string) {
	if logrus.GetLevel() < logrus.TraceLevel {
		return
	}
	logCh <- logPair{logFn: logrus.Trace, obj: objToString(object), msg: message}
}

// Tracef is Trace with Sprintf-style formatting.
func Tracef(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.TraceLevel {
		return
	}
	logCh <- logPair{logFn: logrus.Trace, obj: objToString(object), msg: fmt.Sprintf(message, args...)}
}

// Debug logs at debug level.
func Debug(object any, message string) {
	if logrus.GetLevel() < logrus.DebugLevel {
		return
	}
	logCh <- logPair{logFn: logrus.Debug, obj: objToString(object), msg: message}
}

// Debugf is Debug with Sprintf-style formatting.
func Debugf(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.DebugLevel {
		return
	}
	logCh <- logPair{logFn: logrus.Debug, obj: objToString(object), msg: fmt.Sprintf(message, args...)}
}

// Info logs at info level.
func Info(object any, message string) {
	if logrus.GetLevel() < logrus.InfoLevel {
		return
	}
	logCh <- logPair{logFn: logrus.Info, obj: objToString(object), msg: message}
}

// Infof is Info with Sprintf-style formatting.
func Infof(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.InfoLevel {
		return
	}
	logCh <- logPair{logFn: logrus.Info, obj: objToString(object), msg: fmt.Sprintf(message, args...)}
}

// Warning logs at warn level.
func Warning(object any, message string) {
	if logrus.GetLevel() < logrus.WarnLevel {
		return
	}
	logCh <- logPair{logFn: logrus.Warning, obj: objToString(object), msg: message}
}

// Warningf is Warning with Sprintf-style formatting.
func Warningf(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.WarnLevel {
		return
	}
	logCh <- logPair{logFn: logrus.Warning, obj: objToString(object), msg: fmt.Sprintf(message, args...)}
}

// Error logs at error level.
func Error(object any, message string) {
	if logrus.GetLevel() < logrus.ErrorLevel {
		return
	}
	logCh <- logPair{logFn: logrus.Error, obj: objToString(object), msg: message}
}

// Errorf is Error with Sprintf-style formatting.
func Errorf(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.ErrorLevel {
		return
	}
	logCh <- logPair{logFn: logrus.Error, obj: objToString(object), msg: fmt.Sprintf(message, args...)}
}
