// Package hexfile reads and writes instruction memory images as text: one
// 16-bit word per line, four uppercase hex digits, the format loaded by
// Verilog's $readmemh.
package hexfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/renameio/v2"
)

// Write writes words to w, one per line.
func Write(w io.Writer, words []uint16) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := fmt.Fprintf(bw, "%04X\n", word); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes words to the named file. The image is built in memory
// and replaced atomically, so a failed write never leaves a partial image
// behind.
func WriteFile(path string, words []uint16) error {
	var buf bytes.Buffer
	if err := Write(&buf, words); err != nil {
		return fmt.Errorf("hexfile: writing %s: %w", path, err)
	}
	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("hexfile: %w", err)
	}
	return nil
}

// Read parses a memory image. Blank lines and // comments are skipped.
// Address directives (@addr) are not supported.
func Read(r io.Reader) ([]uint16, error) {
	var words []uint16

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if cut := strings.Index(line, "//"); cut >= 0 {
			line = line[:cut]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "@") {
			return nil, fmt.Errorf("hexfile: address directive '%s' not supported on line %d", line, lineNo)
		}

		for _, field := range strings.Fields(line) {
			v, err := strconv.ParseUint(field, 16, 16)
			if err != nil {
				return nil, fmt.Errorf("hexfile: invalid word '%s' on line %d", field, lineNo)
			}
			words = append(words, uint16(v))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("hexfile: %w", err)
	}

	return words, nil
}

// ReadFile parses the named memory image.
func ReadFile(path string) ([]uint16, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("hexfile: %w", err)
	}
	defer f.Close()

	return Read(f)
}
