package client

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// readLine returns the next non-blank line, or io.EOF.
func readLine(scanner *bufio.Scanner) (string, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// SubscribeToFileInput streams the lines of input. The lines channel is
// closed when input ends; the error channel then holds the read error, or
// nil at EOF.
func SubscribeToFileInput(ctx context.Context, input io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(input)
		for {
			line, err := readLine(scanner)
			if err != nil {
				if err == io.EOF {
					err = nil
				}
				errChan <- err
				return
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				errChan <- nil
				return
			}
		}
	}()

	return lines, errChan
}
