// Package reports is the append-only log of issue reports submitted by
// logged-in users.
package reports

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"strings"

	"github.com/dmitrijs2005/volt/internal/common"
	"github.com/dmitrijs2005/volt/internal/filex"
	"github.com/dmitrijs2005/volt/internal/linefmt"
	"github.com/dmitrijs2005/volt/internal/logging"
)

const maxLineSize = 1 << 20

// Report is one submitted issue.
type Report struct {
	UserName string
	Issue    string
}

// line encodes r as "name      |'escaped issue'\n".
func (r Report) line() string {
	return linefmt.Pad(r.UserName) + linefmt.Delimiter + linefmt.Quote(linefmt.Escape(r.Issue)) + "\n"
}

// parseLine splits on the first delimiter only: usernames never contain it,
// while issue text written by older versions may.
func parseLine(line string) (Report, error) {
	line = strings.TrimRight(line, "\r\n")
	name, issue, ok := strings.Cut(line, linefmt.Delimiter)
	if !ok {
		return Report{}, fmt.Errorf("%w: no delimiter", common.ErrMalformedRecord)
	}
	return Report{
		UserName: strings.TrimSpace(name),
		Issue:    linefmt.Unescape(linefmt.Unquote(issue)),
	}, nil
}

// FileLog stores reports one per line in a text file.
// Every call opens and closes the file; no handle is kept between calls.
type FileLog struct {
	path string
	log  logging.Logger
}

// NewFileLog returns a log backed by path, creating an empty file if needed.
func NewFileLog(path string, log logging.Logger) (*FileLog, error) {
	if err := filex.EnsureFile(path); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return &FileLog{path: path, log: log.With("store", "reports", "path", path)}, nil
}

// Append writes one report. Failure wraps common.ErrStorageUnavailable.
func (l *FileLog) Append(ctx context.Context, userName, issue string) error {
	r := Report{UserName: strings.TrimSpace(userName), Issue: issue}
	if err := filex.AppendLine(l.path, r.line()); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	l.log.Info(ctx, "report appended", "user", r.UserName)
	return nil
}

// All yields the stored reports in insertion order. Each range over the
// returned sequence reads the file from the beginning. Lines without a
// delimiter and oversized lines are skipped; an I/O failure is yielded once
// as an error wrapping common.ErrStorageUnavailable and ends the sequence.
func (l *FileLog) All(ctx context.Context) iter.Seq2[Report, error] {
	return func(yield func(Report, error) bool) {
		f, err := os.Open(l.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return
			}
			yield(Report{}, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err))
			return
		}
		defer f.Close()

		for ln, err := range filex.Lines(f, maxLineSize) {
			if err != nil {
				yield(Report{}, fmt.Errorf("%w: read %s: %v", common.ErrStorageUnavailable, l.path, err))
				return
			}
			if ln.TooLong {
				l.log.Warn(ctx, "skipping report line", "line", ln.No,
					"error", fmt.Errorf("%w: longer than %d bytes", common.ErrMalformedRecord, maxLineSize))
				continue
			}
			if strings.TrimSpace(ln.Text) == "" {
				continue
			}
			r, err := parseLine(ln.Text)
			if err != nil {
				l.log.Warn(ctx, "skipping report line", "line", ln.No, "error", err)
				continue
			}
			if !yield(r, nil) {
				return
			}
		}
	}
}

// List collects All into a slice.
func (l *FileLog) List(ctx context.Context) ([]Report, error) {
	var out []Report
	for r, err := range l.All(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
