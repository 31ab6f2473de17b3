package filex

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strings"
)

// Line is one line of a record file without its line terminator. TooLong
// lines carry no text: they exceeded the caller's limit and were discarded.
type Line struct {
	No      int
	Text    string
	TooLong bool
}

// Lines yields the lines of r in order. A line longer than maxLen bytes is
// read to its end and reported with TooLong set, so one oversized record does
// not stop the scan. Only read errors are yielded as errors.
func Lines(r io.Reader, maxLen int) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		br := bufio.NewReader(r)
		var (
			buf     []byte
			tooLong bool
			no      int
		)
		for {
			chunk, err := br.ReadSlice('\n')
			if !tooLong {
				if len(buf)+len(chunk) > maxLen+2 {
					tooLong = true
					buf = buf[:0]
				} else {
					buf = append(buf, chunk...)
				}
			}
			if errors.Is(err, bufio.ErrBufferFull) {
				continue
			}
			if err != nil && !errors.Is(err, io.EOF) {
				yield(Line{}, err)
				return
			}

			if len(buf) > 0 || tooLong {
				no++
				text := strings.TrimRight(string(buf), "\r\n")
				if tooLong || len(text) > maxLen {
					text, tooLong = "", true
				}
				if !yield(Line{No: no, Text: text, TooLong: tooLong}, nil) {
					return
				}
			}
			buf, tooLong = buf[:0], false
			if err != nil {
				return
			}
		}
	}
}
