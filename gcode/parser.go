package gcode

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strings"
)

// Parser reads a G-code program one normalized line at a time.
type Parser struct{ br *bufio.Reader }

func NewParser(r io.Reader) *Parser {
	if br, ok := r.(*bufio.Reader); ok {
		return &Parser{br: br}
	}

	return &Parser{br: bufio.NewReader(r)}
}

var (
	rx        = regexp.MustCompile(`^([A-Z][+\-]?[0-9]*\.?[0-9]*)+$`)
	rxSplit   = regexp.MustCompile(`[A-Z][+\-]?[0-9]*\.?[0-9]*`)
	rxComment = regexp.MustCompile(`\([^)]*\)`)
)

// Read returns the next non-empty line with comments removed and
// words separated by a single space. Grbl system commands (`$...`)
// are passed through as-is.
func (p *Parser) Read() (string, error) {
	for {
		s, err := p.br.ReadString('\n')
		if err == io.EOF && s != "" {
			err = nil
		}
		if err != nil {
			return "", err
		}

		s = strings.SplitN(s, ";", 2)[0]
		s = rxComment.ReplaceAllString(s, "")
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if s[0] == '$' {
			return s, nil
		}

		s = strings.ToUpper(strings.Join(strings.Fields(s), ""))
		if !rx.MatchString(s) {
			return "", errors.New("invalid or unhandled line: " + s)
		}

		return strings.Join(rxSplit.FindAllString(s, -1), " "), nil
	}
}
