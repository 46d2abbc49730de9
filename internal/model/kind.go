package model

import (
	"fmt"
	"strings"
)

// OptionKind is the exercise right of a European option.
// Keep these values stable; they are used in CSV and JSON output.
type OptionKind string

const (
	Call OptionKind = "CALL"
	Put  OptionKind = "PUT"
)

func ParseOptionKind(s string) (OptionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	default:
		return "", fmt.Errorf("%w: unknown option kind %q (want call or put)", ErrInvalidParameter, s)
	}
}

func (k OptionKind) Valid() bool {
	return k == Call || k == Put
}
