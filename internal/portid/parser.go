package portid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// portRegex matches the trailing port segment, e.g. `out[0]`.
var portRegex = regexp.MustCompile(`^(in|out)\[(\d+)\]$`)

// Parse creates an Address from its canonical string representation.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("port address cannot be empty")
	}

	dot := strings.LastIndex(raw, ".")
	if dot <= 0 || dot == len(raw)-1 {
		return Address{}, fmt.Errorf("port address %q must have the form <gate>.<in|out>[<slot>]", raw)
	}

	gate, port := raw[:dot], raw[dot+1:]
	matches := portRegex.FindStringSubmatch(port)
	if matches == nil {
		return Address{}, fmt.Errorf("invalid port segment %q in %q", port, raw)
	}

	slot, err := strconv.Atoi(matches[2])
	if err != nil {
		// Unreachable due to regex `\d+` unless the number overflows.
		return Address{}, fmt.Errorf("invalid slot in %q: %w", raw, err)
	}

	return Address{Gate: gate, Direction: Direction(matches[1]), Slot: slot}, nil
}
