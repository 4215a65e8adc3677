// Package batch provides support for reading edit operation scripts,
// either as a JSON array of operation strings or as plain text with one
// operation per line.
package batch

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	// MaxScriptSize is the maximum file size for an operation script (1MB).
	MaxScriptSize = 1 * 1024 * 1024
	// MaxOpCount is the maximum number of operations in a script.
	MaxOpCount = 1000
)

// ReadOps reads edit operations from a script file. A file whose first
// non-blank character is "[" is parsed as a JSON array of operation
// strings; anything else is read line by line, skipping blank lines and
// lines starting with "#".
func ReadOps(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot stat file: %w", err)
	}

	if info.Size() > MaxScriptSize {
		return nil, fmt.Errorf("file exceeds maximum size of %d bytes", MaxScriptSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	if trimmed := strings.TrimSpace(string(data)); strings.HasPrefix(trimmed, "[") {
		var ops []string
		if err := json.Unmarshal([]byte(trimmed), &ops); err != nil {
			return nil, fmt.Errorf("invalid JSON operation list: %w", err)
		}
		if len(ops) > MaxOpCount {
			return nil, fmt.Errorf("file exceeds maximum operation count of %d", MaxOpCount)
		}
		return ops, nil
	}

	var ops []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ops = append(ops, line)
		if len(ops) > MaxOpCount {
			return nil, fmt.Errorf("file exceeds maximum operation count of %d", MaxOpCount)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return ops, nil
}
