// Package vmlog is the structured logging layer an embedder wires up
// around the interpreter core: a fan-out slog handler writing to a text
// handler unless the process runs as a systemd service, and to the systemd
// journal whenever a journal handler can be opened, grounded on the teacher repository's logs package but with the CLI log
// level flags dropped — spec §6 excludes a CLI/env surface at this layer,
// so the level is set programmatically instead.
package vmlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/reusee/dscope"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

type Module struct {
	dscope.Module
}

// Writer is the local text handler's destination; an embedder overrides
// this binding to redirect it (tests typically point it at an
// io.Discard or a bytes.Buffer).
type Writer = io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}

// Level lets an embedder set the minimum logged severity without a CLI
// flag parser.
type Level = *slog.LevelVar

func (Module) Level() Level {
	return new(slog.LevelVar)
}

type Logger = *slog.Logger

func (Module) Logger(writer Writer, level Level) Logger {
	var handlers []slog.Handler

	isSystemdService := false
	if cgroupPath, err := getCgroupPath(); err == nil {
		isSystemdService = strings.HasSuffix(path.Dir(cgroupPath), ".service")
	}

	var terminalHandler slog.Handler
	if !isSystemdService {
		terminalHandler = slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level})
		handlers = append(handlers, terminalHandler)
	}

	journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
		ReplaceGroup: func(key string) string { return toJournalKey(key) },
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			a.Key = toJournalKey(a.Key)
			return a
		},
	})
	if err != nil {
		if terminalHandler != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
			record.Add("error", err)
			_ = terminalHandler.Handle(context.Background(), record)
		}
	} else {
		handlers = append(handlers, journalHandler)
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}

func getCgroupPath() (string, error) {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return "", err
	}
	parts := strings.Split(string(content), ":")
	if len(parts) >= 3 {
		return parts[2], nil
	}
	return "", nil
}
