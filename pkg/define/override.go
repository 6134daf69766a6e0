package define

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseOverride parses a command-line define override into a Define.
//
// Accepted forms:
//
//	NAME=3              fixed value
//	NAME=1,2,4          enumeration over the listed values
//	NAME=range(0,16,2)  half-open range with step (step optional, default 1)
//
// Overrides layer on top of suite and case defines via Merge, so an
// override can both pin an enumerable define to one value and widen a
// fixed one into an enumeration.
func ParseOverride(s string) (Define, error) {
	name, spec, ok := strings.Cut(s, "=")
	if !ok || name == "" || spec == "" {
		return Define{}, fmt.Errorf("override %q: want NAME=VALUE", s)
	}

	if inner, ok := rangeSpec(spec); ok {
		parts := strings.Split(inner, ",")
		if len(parts) != 2 && len(parts) != 3 {
			return Define{}, fmt.Errorf("override %s: range wants (start,stop[,step])", name)
		}
		var nums [3]Value
		nums[2] = 1
		for i, p := range parts {
			v, err := strconv.ParseInt(strings.TrimSpace(p), 0, 64)
			if err != nil {
				return Define{}, fmt.Errorf("override %s: range bound %q: %w", name, p, err)
			}
			nums[i] = v
		}
		return Range(name, nums[0], nums[1], nums[2])
	}

	parts := strings.Split(spec, ",")
	values := make([]Value, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 0, 64)
		if err != nil {
			return Define{}, fmt.Errorf("override %s: value %q: %w", name, p, err)
		}
		values = append(values, v)
	}
	if len(values) == 1 {
		return Const(name, values[0]), nil
	}
	return Enum(name, values...), nil
}

// ParseOverrides parses each entry with ParseOverride, preserving order.
func ParseOverrides(specs []string) ([]Define, error) {
	out := make([]Define, 0, len(specs))
	for _, s := range specs {
		d, err := ParseOverride(s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func rangeSpec(spec string) (string, bool) {
	if strings.HasPrefix(spec, "range(") && strings.HasSuffix(spec, ")") {
		return spec[len("range(") : len(spec)-1], true
	}
	return "", false
}
