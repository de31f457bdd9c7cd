package mlog

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLog(t *testing.T) {
	var b bytes.Buffer
	prev := SetOutput(&b)
	defer SetOutput(prev)
	defer SetConfig(map[string]slog.Level{"": LevelError})

	SetConfig(map[string]slog.Level{"": LevelInfo, "noisy": LevelDebug, "quiet": LevelError})

	check := func(exp string) {
		t.Helper()
		if b.String() != exp {
			t.Fatalf("got %q, expected %q", b.String(), exp)
		}
		b.Reset()
	}

	log := New("test", nil)
	log.Debug("not logged")
	check("")
	log.Info("parsed", slog.Int("n", 3))
	check("info: parsed (pkg: test; n: 3)\n")
	log.Errorx("parse failed", errors.New("bad byte"), slog.String("input", "a b"))
	check(`error: parse failed: bad byte (pkg: test; input: "a b")` + "\n")
	log.Check(nil, "not logged")
	check("")

	New("noisy", nil).Debug("logged")
	check("debug: logged (pkg: noisy)\n")
	New("quiet", nil).Info("not logged")
	check("")
	New("quiet", nil).Print("always")
	check("print: always (pkg: quiet)\n")

	log.With(slog.String("field", "subject")).Info("with")
	check("info: with (pkg: test; field: subject)\n")

	Logfmt = true
	defer func() { Logfmt = false }()
	log.Infox("line", errors.New("x y"), slog.Any("raw", []byte("a=b")))
	check(`l=info m=line err="x y" pkg=test raw="a=b"` + "\n")
}

func TestLevels(t *testing.T) {
	for s, l := range Levels {
		if LevelStrings[l] != s {
			t.Fatalf("level %q does not round trip", s)
		}
	}
	if !enabled("", LevelFatal) {
		t.Fatalf("fatal not enabled")
	}
	if !strings.HasPrefix(logfmtValue("a b"), `"`) {
		t.Fatalf("value with space not quoted")
	}
}
