package handler

import (
	"strconv"
	"strings"
)

const (
	defaultPageSize = 10
	maxTopLimit     = 50
)

// CommandArgs returns the words after the command itself.
func CommandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) < 2 { //nolint:mnd
		return nil
	}

	return fields[1:]
}

// ParseAppIDs splits args into valid app ids and the tokens that are not.
func ParseAppIDs(args []string) ([]int64, []string) {
	var (
		ids     []int64
		invalid []string
	)

	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			invalid = append(invalid, arg)
			continue
		}

		ids = append(ids, id)
	}

	return ids, invalid
}

// ParseTopLimit reads the optional count of /top, clamped to [1, 50].
func ParseTopLimit(args []string, fallback int) int {
	if len(args) == 0 {
		return fallback
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fallback
	}

	return min(n, maxTopLimit)
}

// Pages is the number of pages needed for total items, at least one.
func Pages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}

	return (total + pageSize - 1) / pageSize
}
