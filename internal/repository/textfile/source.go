package textfile

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/arklim/steam-friend-adder/internal/core/port"
)

// Source streams raw lines from a flat text file of SteamIDs, one per line.
// Blank lines and comments are passed through; the batch processor decides
// what to skip.
type Source struct {
	file    *os.File
	scanner *bufio.Scanner
}

// Open opens the file for line-by-line reading.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	return &Source{file: f, scanner: bufio.NewScanner(f)}, nil
}

// Next returns the next raw line, io.EOF after the last one, or the
// underlying read error.
func (s *Source) Next() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("read input file: %w", err)
	}
	return "", io.EOF
}

// Close releases the underlying file.
func (s *Source) Close() error {
	return s.file.Close()
}

var _ port.LineSource = (*Source)(nil)
