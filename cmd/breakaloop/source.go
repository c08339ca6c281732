package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/vovakirdan/breakaloop/internal/levels"
)

// source is a program to inspect: a file, or the code of a level.
type source struct {
	name string
	code string
}

// resolveSource reads arg as a file, or else looks it up as a level ID or
// level number. With solved, a level's tokens are spliced in first.
func resolveSource(arg string, solved bool) (source, error) {
	data, err := os.ReadFile(arg)
	if err == nil {
		return source{name: arg, code: string(data)}, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return source{}, err
	}

	set, err := loadLevels()
	if err != nil {
		return source{}, err
	}
	lvl, err := set.ByID(arg)
	if errors.Is(err, levels.ErrNotFound) {
		if n, convErr := strconv.Atoi(arg); convErr == nil {
			lvl, err = set.At(n - 1)
		}
	}
	if err != nil {
		return source{}, fmt.Errorf("%q is neither a file nor a level: %w", arg, err)
	}

	src := source{name: fmt.Sprintf("level %d (%s)", lvl.Index+1, lvl.Name), code: lvl.Code}
	if solved {
		src.code = lvl.Solved()
	}
	return src, nil
}
