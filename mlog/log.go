// Package mlog provides logging on top of log/slog, with log levels configured
// per originating package.
//
// Log messages should be constant, with variable data in attributes, so logs
// can be processed easily. Each Log has an attribute "pkg", whose configured
// level decides whether a message is logged. The empty package name holds the
// default level.
//
// Print* always logs, regardless of configured levels. Useful for subcommands.
// Fatal* logs and stops the program.
package mlog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

var noctx = context.Background()

// Logfmt makes log lines use logfmt, with l= for the level and m= for the
// message, instead of the format for humans.
var Logfmt bool

const (
	LevelPrint slog.Level = 12 // Printed regardless of configured log level.
	LevelFatal slog.Level = 10 // Printed regardless of configured log level.
	LevelError            = slog.LevelError
	LevelWarn             = slog.LevelWarn
	LevelInfo             = slog.LevelInfo
	LevelDebug            = slog.LevelDebug
	LevelTrace slog.Level = -8
)

var LevelStrings = map[slog.Level]string{
	LevelPrint: "print",
	LevelFatal: "fatal",
	LevelError: "error",
	LevelWarn:  "warn",
	LevelInfo:  "info",
	LevelDebug: "debug",
	LevelTrace: "trace",
}

var Levels = map[string]slog.Level{
	"print": LevelPrint,
	"fatal": LevelFatal,
	"error": LevelError,
	"warn":  LevelWarn,
	"info":  LevelInfo,
	"debug": LevelDebug,
	"trace": LevelTrace,
}

// Package name to log level. The empty string is the default level.
var config atomic.Pointer[map[string]slog.Level]

func init() {
	SetConfig(map[string]slog.Level{"": LevelError})
}

// SetConfig atomically sets the log levels used by all Log instances.
func SetConfig(c map[string]slog.Level) {
	config.Store(&c)
}

var output = struct {
	sync.Mutex
	w io.Writer
}{w: os.Stderr}

// SetOutput sets the writer for all log lines, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	output.Lock()
	defer output.Unlock()
	prev := output.w
	output.w = w
	return prev
}

func enabled(pkg string, level slog.Level) bool {
	if level >= LevelFatal {
		return true
	}
	c := *config.Load()
	if l, ok := c[pkg]; ok {
		return level >= l
	}
	l, ok := c[""]
	return ok && level >= l
}

// Log is a slog.Logger with convenience functions that take an error to log.
type Log struct {
	*slog.Logger
}

// New returns a Log for package pkg. If logger is nil, a logger writing to the
// configured output with the configured log levels is used.
func New(pkg string, logger *slog.Logger) Log {
	if logger == nil {
		logger = slog.New(&handler{})
	}
	return Log{logger.With(slog.String("pkg", pkg))}
}

// With returns a Log that adds attrs to each logged line.
func (l Log) With(attrs ...slog.Attr) Log {
	return Log{slog.New(l.Logger.Handler().WithAttrs(attrs))}
}

// Check logs err at error level if it is not nil.
func (l Log) Check(err error, msg string, attrs ...slog.Attr) {
	if err != nil {
		l.Errorx(msg, err, attrs...)
	}
}

func (l Log) Fatal(msg string, attrs ...slog.Attr) { l.Fatalx(msg, nil, attrs...) }
func (l Log) Fatalx(msg string, err error, attrs ...slog.Attr) {
	l.plog(LevelFatal, err, msg, attrs...)
	os.Exit(1)
}

func (l Log) Print(msg string, attrs ...slog.Attr) { l.Printx(msg, nil, attrs...) }
func (l Log) Printx(msg string, err error, attrs ...slog.Attr) {
	l.plog(LevelPrint, err, msg, attrs...)
}

func (l Log) Error(msg string, attrs ...slog.Attr) { l.Errorx(msg, nil, attrs...) }
func (l Log) Errorx(msg string, err error, attrs ...slog.Attr) {
	l.plog(LevelError, err, msg, attrs...)
}

func (l Log) Info(msg string, attrs ...slog.Attr) { l.Infox(msg, nil, attrs...) }
func (l Log) Infox(msg string, err error, attrs ...slog.Attr) {
	l.plog(LevelInfo, err, msg, attrs...)
}

func (l Log) Debug(msg string, attrs ...slog.Attr) { l.Debugx(msg, nil, attrs...) }
func (l Log) Debugx(msg string, err error, attrs ...slog.Attr) {
	l.plog(LevelDebug, err, msg, attrs...)
}

func (l Log) Trace(msg string, attrs ...slog.Attr) {
	l.plog(LevelTrace, nil, msg, attrs...)
}

func (l Log) plog(level slog.Level, err error, msg string, attrs ...slog.Attr) {
	if !l.Enabled(noctx, level) {
		return
	}
	if err != nil {
		attrs = append([]slog.Attr{slog.Any("err", err)}, attrs...)
	}
	l.LogAttrs(noctx, level, msg, attrs...)
}

// handler formats log lines and writes them to the output.
type handler struct {
	pkg   string
	group string
	attrs []slog.Attr
}

var _ slog.Handler = (*handler)(nil)

func (h *handler) Enabled(ctx context.Context, level slog.Level) bool {
	return enabled(h.pkg, level)
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = slices.Clip(nh.attrs)
	for _, a := range attrs {
		if h.group == "" && a.Key == "pkg" {
			nh.pkg = a.Value.String()
			continue
		}
		nh.attrs = append(nh.attrs, h.prefixed(a))
	}
	return &nh
}

func (h *handler) WithGroup(name string) slog.Handler {
	nh := *h
	if nh.group != "" {
		name = nh.group + "." + name
	}
	nh.group = name
	return &nh
}

func (h *handler) prefixed(a slog.Attr) slog.Attr {
	if h.group != "" {
		a.Key = h.group + "." + a.Key
	}
	return a
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	var errs string
	var attrs []slog.Attr
	if h.pkg != "" {
		attrs = append(attrs, slog.String("pkg", h.pkg))
	}
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		if h.group == "" && a.Key == "err" {
			errs = a.Value.String()
		} else {
			attrs = append(attrs, h.prefixed(a))
		}
		return true
	})

	level, ok := LevelStrings[r.Level]
	if !ok {
		level = strings.ToLower(r.Level.String())
	}

	// A single write per line, so concurrent lines do not interleave.
	b := &bytes.Buffer{}
	if Logfmt {
		fmt.Fprintf(b, "l=%s m=%s", level, logfmtValue(r.Message))
		if errs != "" {
			fmt.Fprintf(b, " err=%s", logfmtValue(errs))
		}
		for _, a := range attrs {
			fmt.Fprintf(b, " %s=%s", a.Key, logfmtValue(stringValue(a.Value)))
		}
	} else {
		fmt.Fprintf(b, "%s: %s", level, r.Message)
		if errs != "" {
			fmt.Fprintf(b, ": %s", errs)
		}
		if len(attrs) > 0 {
			b.WriteString(" (")
			for i, a := range attrs {
				if i > 0 {
					b.WriteString("; ")
				}
				fmt.Fprintf(b, "%s: %s", a.Key, logfmtValue(stringValue(a.Value)))
			}
			b.WriteString(")")
		}
	}
	b.WriteString("\n")

	output.Lock()
	defer output.Unlock()
	_, err := output.w.Write(b.Bytes())
	return err
}

func stringValue(v slog.Value) string {
	v = v.Resolve()
	if v.Kind() == slog.KindAny {
		if buf, ok := v.Any().([]byte); ok {
			return string(buf)
		}
	}
	return v.String()
}

// logfmtValue quotes s if needed, otherwise returns it unchanged.
func logfmtValue(s string) string {
	for _, c := range s {
		if c == '"' || c == '\\' || c <= ' ' || c == '=' || c >= 0x7f {
			return fmt.Sprintf("%q", s)
		}
	}
	return s
}
