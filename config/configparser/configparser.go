/*
 * m6809 - Board configuration file parser
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
)

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <name> *<whitespace> ['=' *<whitespace> <value>]
 * <name>  := <letter> *(<letter> | <number>)
 * <value> := <quoteopt> | <bareword>
 * <bareword> ::= *(any non-whitespace character)
 * <quoteopt> ::= '"' *(any character | '""') '"'
 */

// Config holds the board settings a configuration file can set: the ROM
// image to load, the I/O page base address, the interval timer period,
// and which backend the UART reads and writes through.
type Config struct {
	ROMPath     string
	IOPage      uint16
	TimerPeriod time.Duration
	UARTBackend string // "stdio" or "tcp"
	UARTAddr    string // listen address when UARTBackend is "tcp"
}

// Default returns the board configuration used when no file overrides
// a setting.
func Default() Config {
	return Config{
		IOPage:      0xE000,
		TimerPeriod: 20 * time.Millisecond,
		UARTBackend: "stdio",
	}
}

// setting applies one name/value pair from a configuration line to cfg.
type setting func(cfg *Config, value string) error

var settings = map[string]setting{
	"rom": func(cfg *Config, value string) error {
		if value == "" {
			return errors.New("rom requires a path")
		}
		cfg.ROMPath = value
		return nil
	},
	"iopage": func(cfg *Config, value string) error {
		n, err := strconv.ParseUint(strings.TrimPrefix(value, "0x"), 16, 16)
		if err != nil {
			return fmt.Errorf("iopage: %w", err)
		}
		cfg.IOPage = uint16(n)
		return nil
	},
	"timer": func(cfg *Config, value string) error {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("timer: %w", err)
		}
		cfg.TimerPeriod = d
		return nil
	},
	"uart": func(cfg *Config, value string) error {
		// "stdio" or "tcp:<listen-address>" — colon-joined so the
		// whole value is one bare token and needs no quoting.
		backend, addr, _ := strings.Cut(value, ":")
		switch strings.ToLower(backend) {
		case "stdio":
			cfg.UARTBackend = "stdio"
			cfg.UARTAddr = ""
		case "tcp":
			cfg.UARTBackend = "tcp"
			cfg.UARTAddr = addr
		default:
			return fmt.Errorf("uart: unknown backend %q", backend)
		}
		return nil
	},
}

// Current option line being parsed.
type optionLine struct {
	line string // Current option line.
	pos  int    // Current position in line.
}

var lineNumber int

// LoadConfigFile reads name and applies every setting it contains on
// top of Default().
func LoadConfigFile(name string) (Config, error) {
	cfg := Default()

	file, err := os.Open(name)
	if err != nil {
		return cfg, err
	}
	defer file.Close()

	lineNumber = 0
	reader := bufio.NewReader(file)
	for {
		var err error

		line := optionLine{}
		line.line, err = reader.ReadString('\n')
		lineNumber++
		if len(line.line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return cfg, err
		}
		if perr := line.parseLine(&cfg); perr != nil {
			return cfg, perr
		}
	}
	return cfg, nil
}

// Parse one line from file.
func (line *optionLine) parseLine(cfg *Config) error {
	name, err := line.getName()
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}
	name = strings.ToLower(name)

	apply, ok := settings[name]
	if !ok {
		return fmt.Errorf("unknown setting %q, line %d", name, lineNumber)
	}

	line.skipSpace()
	value := ""
	if !line.isEOL() && line.line[line.pos] == '=' {
		line.pos++
		line.skipSpace()
		v, ok := line.parseQuoteString()
		if !ok {
			return fmt.Errorf("invalid value for %q, line %d", name, lineNumber)
		}
		value = v
	}

	if err := apply(cfg, value); err != nil {
		return fmt.Errorf("%s, line %d", err, lineNumber)
	}
	return nil
}

// Skip forward over line until none whitespace character found.
func (line *optionLine) skipSpace() {
	for {
		if line.pos >= len(line.line) {
			return
		}
		if unicode.IsSpace(rune(line.line[line.pos])) {
			line.pos++
			continue
		}
		return
	}
}

// Check if at end of line.
func (line *optionLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// Return next letter or digit in line. 0 if EOL or space.
func (line *optionLine) getNext(inQuote bool) byte {
	line.pos++
	if line.isEOL() {
		return 0
	}
	by := line.line[line.pos]
	if unicode.IsLetter(rune(by)) || unicode.IsNumber(rune(by)) || inQuote {
		return by
	}
	return 0
}

// Parse a value that is a "quoted string" or a bare run of non-space
// text, starting at the current position. A doubled quote inside a
// quoted string is a literal quote. Returns ok=false for an
// unterminated quote.
func (line *optionLine) parseQuoteString() (string, bool) {
	if line.isEOL() {
		return "", true
	}

	if line.line[line.pos] != '"' {
		value := ""
		for !line.isEOL() && !unicode.IsSpace(rune(line.line[line.pos])) {
			value += string(line.line[line.pos])
			line.pos++
		}
		return value, true
	}

	line.pos++ // skip opening quote
	value := ""
	for {
		if line.pos >= len(line.line) || line.line[line.pos] == '\n' {
			return value, false
		}
		by := line.line[line.pos]
		if by == '"' {
			line.pos++
			if line.pos < len(line.line) && line.line[line.pos] == '"' {
				value += "\""
				line.pos++
				continue
			}
			return value, true
		}
		value += string(by)
		line.pos++
	}
}

// Parse a setting name.
func (line *optionLine) getName() (string, error) {
	line.skipSpace()
	if line.isEOL() {
		return "", nil
	}

	by := line.line[line.pos]
	if !unicode.IsLetter(rune(by)) {
		return "", fmt.Errorf("invalid option encountered line: %d [%d]", lineNumber, line.pos)
	}
	value := ""

	for {
		value += string([]byte{by})
		by = line.getNext(false)
		if by == 0 {
			break
		}
	}

	return value, nil
}
