// Package resolution picks capture resolutions from the sizes a device reports.
//
// Sizes are compared independent of orientation: a 1080x1920 request and a
// 1920x1080 candidate share the same minor/major pair and the same ratio.
//
// Selection runs in three tiers:
//
//	exact    - candidate whose (minor, major) equals the target's
//	aspect   - highest-pixel candidate whose minor/major ratio is within 0.05
//	fallback - highest-pixel candidate
//
// Selection never mutates the caller's slice and never returns a size that
// was not in the input.
package resolution

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Resolution is a width/height pair in pixels.
type Resolution struct {
	Width  int
	Height int
}

// Target is the size a caller wants to approximate.
type Target = Resolution

// New returns a Resolution for the given dimensions.
func New(width, height int) Resolution {
	return Resolution{Width: width, Height: height}
}

// Valid reports whether both dimensions are positive.
func (r Resolution) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// Minor returns the smaller dimension.
func (r Resolution) Minor() int {
	return min(r.Width, r.Height)
}

// Major returns the larger dimension.
func (r Resolution) Major() int {
	return max(r.Width, r.Height)
}

// Normalized returns the resolution in landscape orientation (minor as height).
func (r Resolution) Normalized() Resolution {
	return Resolution{Width: r.Major(), Height: r.Minor()}
}

// Ratio returns minor/major. Zero for invalid resolutions.
func (r Resolution) Ratio() float64 {
	if !r.Valid() {
		return 0
	}
	return float64(r.Minor()) / float64(r.Major())
}

// Pixels returns width*height.
func (r Resolution) Pixels() int {
	return r.Width * r.Height
}

// String formats the resolution as WIDTHxHEIGHT.
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// MarshalText implements encoding.TextMarshaler.
func (r Resolution) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Resolution) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

var resolutionRegex = regexp.MustCompile(`^(\d+)\s*[xX]\s*(\d+)$`) // 1280x720

// Parse parses "1280x720" (or "1280X720") into a Resolution.
func Parse(s string) (Resolution, error) {
	matches := resolutionRegex.FindStringSubmatch(strings.TrimSpace(s))
	if len(matches) != 3 {
		return Resolution{}, newInvalidInput(fmt.Sprintf("malformed resolution %q, want WIDTHxHEIGHT", s))
	}

	width, err := strconv.Atoi(matches[1])
	if err != nil {
		return Resolution{}, newInvalidInput(fmt.Sprintf("width out of range in %q", s))
	}
	height, err := strconv.Atoi(matches[2])
	if err != nil {
		return Resolution{}, newInvalidInput(fmt.Sprintf("height out of range in %q", s))
	}

	r := Resolution{Width: width, Height: height}
	if !r.Valid() {
		return Resolution{}, newInvalidInput(fmt.Sprintf("non-positive dimension in %q", s))
	}
	return r, nil
}

// ParseList parses a comma or whitespace separated list of resolutions.
func ParseList(s string) ([]Resolution, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	list := make([]Resolution, 0, len(fields))
	for _, field := range fields {
		r, err := Parse(field)
		if err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, nil
}

// ParseAll parses each string as a resolution.
func ParseAll(values []string) ([]Resolution, error) {
	list := make([]Resolution, 0, len(values))
	for _, v := range values {
		r, err := Parse(v)
		if err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, nil
}

// Strings formats each resolution as WIDTHxHEIGHT.
func Strings(list []Resolution) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.String()
	}
	return out
}
