package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// log message importance, highest (most verbose) to lowest
const (
	Debug   int = 9 // only interesting while chasing a specific bug
	Info    int = 7 // routine: a query answered, an index (re)built
	Warning int = 5 // recovered from by clamping/defaulting, worth a look
	Error   int = 3 // a request failed, the process itself did not
	Fatal   int = 1 // the process cannot continue
)

// fatalExitCode is what the process exits with after a Fatal-level
// message is written.
const fatalExitCode int = 3

var levelPrefix = map[int]string{
	Warning: "WARNING: ",
	Error:   "ERROR: ",
	Fatal:   "FATAL: ",
}

// Logger serializes writes to a single io.WriteCloser and gates them
// by importance level. Reach for Log (or one of its Debug/Info/...
// wrappers) for anything raised in response to a single call - a bad
// CSV row, a config value out of range. Reach for ScheduleReport for
// anything that should be said again and again for as long as the
// process runs, such as periodic size/height statistics about a live
// index. Use Compose when one logical message needs several writes
// held under the same lock. Must not be copied or moved once created.
type Logger struct {
	writeTo   io.WriteCloser
	writeLock sync.Mutex
	Threshold int
	reports   reportScheduler
}

// NewLogger wraps writeTo, logging everything at level <= threshold
// and discarding the rest. Also starts the goroutine that drives any
// reports later registered with ScheduleReport.
func NewLogger(writeTo io.WriteCloser, threshold int) *Logger {
	l := &Logger{
		writeTo:   writeTo,
		Threshold: threshold,
		reports:   newReportScheduler(),
	}
	go reportLoop(l)
	return l
}

// Close stops the report-scheduling goroutine and closes the
// underlying writer.
func (l *Logger) Close() {
	l.reports.Close()
	l.writeLock.Lock()
	defer l.writeLock.Unlock()
	_ = l.writeTo.Close() // nothing left to log the error to
	l.writeTo = nil
}

// prefixMessage writes the timestamp (unless Threshold is Debug, where
// every line is already dense enough) and the level label, if any.
func (l *Logger) prefixMessage(level int) {
	if l.Threshold < Debug {
		fmt.Fprint(l.writeTo, time.Now().Format("2006-01-02 15:04:05: "))
	}
	if prefix, tagged := levelPrefix[level]; tagged && (level != Fatal || l.Threshold != Debug) {
		fmt.Fprint(l.writeTo, prefix)
	}
}

// writeMessage formats format/args onto w the way every logging entry
// point does: Fprint if there are no args (so a literal %-containing
// string isn't misread as a format string), Fprintf otherwise.
func writeMessage(w io.Writer, format string, args ...interface{}) {
	if len(args) == 0 {
		fmt.Fprint(w, format)
	} else {
		fmt.Fprintf(w, format, args...)
	}
}

// Compose holds the write lock across multiple Composer calls, so a
// message built from several pieces - e.g. a periodic report's header
// line plus one line per stat - reaches the writer as one unbroken
// block even under concurrent logging.
func (l *Logger) Compose(level int) Composer {
	c := Composer{level: level}
	if level <= l.Threshold {
		c.writeTo = l.writeTo
		c.heldLock = &l.writeLock
		l.writeLock.Lock()
		l.prefixMessage(level)
	}
	return c
}

// Log writes one message if level clears the logger's Threshold, then
// exits the process if level is Fatal.
func (l *Logger) Log(level int, format string, args ...interface{}) {
	if level > l.Threshold {
		return
	}
	l.writeLock.Lock()
	defer l.writeLock.Unlock()
	l.prefixMessage(level)
	writeMessage(l.writeTo, format, args...)
	fmt.Fprintln(l.writeTo)
	if level == Fatal {
		os.Exit(fatalExitCode)
	}
}

func (l *Logger) Debug(format string, args ...interface{})   { l.Log(Debug, format, args...) }
func (l *Logger) Info(format string, args ...interface{})    { l.Log(Info, format, args...) }
func (l *Logger) Warning(format string, args ...interface{}) { l.Log(Warning, format, args...) }
func (l *Logger) Error(format string, args ...interface{})   { l.Log(Error, format, args...) }
func (l *Logger) Fatal(format string, args ...interface{})   { l.Log(Fatal, format, args...) }

// FatalIfErr does nothing if err is nil; otherwise logs "failed to
// <format>: <err>" at Fatal and exits the process. Meant for the CLI's
// own setup steps (opening the input file, parsing a flag) where there
// is no caller left to hand the error back to.
func (l *Logger) FatalIfErr(err error, format string, args ...interface{}) {
	if err != nil {
		args = append(args, err.Error())
		l.Fatal("failed to "+format+": %s", args...)
	}
}

// Composer is the handle Compose returns: Write/Writeln append to the
// held message, Close (or Finish, which also writes) releases the
// lock. A Composer obtained at a level above Threshold (one the logger
// discards) is a harmless no-op, so callers never need to guard
// Compose calls themselves.
type Composer struct {
	level    int
	writeTo  io.Writer
	heldLock *sync.Mutex
}

// Write appends formatted text with no trailing newline.
func (c *Composer) Write(format string, args ...interface{}) {
	if c.writeTo != nil {
		writeMessage(c.writeTo, format, args...)
	}
}

// Writeln appends a formatted line, newline included.
func (c *Composer) Writeln(format string, args ...interface{}) {
	if c.writeTo != nil {
		writeMessage(c.writeTo, format, args...)
		fmt.Fprintln(c.writeTo)
	}
}

// Finish writes one last line and closes the composer.
func (c *Composer) Finish(format string, args ...interface{}) {
	c.Write(format, args...)
	c.Close()
}

// Close ends the message with a newline and releases the logger's
// write lock, then exits the process if this composer was opened at
// Fatal.
func (c *Composer) Close() {
	if c.writeTo == nil {
		return
	}
	fmt.Fprintln(c.writeTo)
	c.heldLock.Unlock()
	if c.level == Fatal {
		os.Exit(fatalExitCode)
	}
	c.writeTo = nil
}
