package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// listFilePrefix marks an argument naming a file that lists inputs.
const listFilePrefix = "@"

// expandInputs replaces every @file argument by the inputs listed in that
// file, one per line. Blank lines and lines starting with '#' are skipped.
func expandInputs(args []string, logger *slog.Logger) ([]string, error) {
	files := make([]string, 0, len(args))

	for _, arg := range args {
		name, ok := strings.CutPrefix(arg, listFilePrefix)
		if !ok || name == "" {
			files = append(files, arg)
			continue
		}

		listed, err := readListFile(name, logger)
		if err != nil {
			return nil, err
		}
		files = append(files, listed...)
	}

	return files, nil
}

func readListFile(name string, logger *slog.Logger) ([]string, error) {
	logger.Info("reading list file", "file", name)

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("cannot read list file %s: %w", name, err)
	}
	defer f.Close()

	var files []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		logger.Debug("adding file from list file", "file", line, "list", name)
		files = append(files, line)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cannot read list file %s: %w", name, err)
	}

	return files, nil
}
