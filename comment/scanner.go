package comment

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Block is an extracted comment, one entry per source line. A trailing empty
// entry separates the block from whatever is written after it.
type Block []string

type state int

const (
	stateSearching state = iota
	stateInComment
	stateDone
)

// scanner finds the line matching anchor, then collects the text of the
// comment lines that follow it until the first line that is not a comment.
type scanner struct {
	anchor *regexp.Regexp
	line   *regexp.Regexp
	block  Block
	state  state
}

func newScanner(anchor, line *regexp.Regexp) *scanner {
	return &scanner{anchor: anchor, line: line}
}

// feed advances the state machine by one source line.
func (s *scanner) feed(line string) {
	line = strings.TrimRight(line, "\r")

	switch s.state {
	case stateSearching:
		if s.anchor.MatchString(line) {
			s.state = stateInComment
		}

	case stateInComment:
		m := s.line.FindStringSubmatch(line)
		if m == nil {
			s.block = append(s.block, "")
			s.state = stateDone

			return
		}

		s.block = append(s.block, strings.TrimRight(m[1], " \t"))

	case stateDone:
	}
}

// scan feeds every line of r until the block is complete or r is exhausted.
func (s *scanner) scan(r io.Reader) (Block, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for s.state != stateDone && sc.Scan() {
		s.feed(sc.Text())
	}

	err := sc.Err()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return s.block, nil
}
