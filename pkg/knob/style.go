package knob

import (
	"fmt"
	"strings"
)

// Style determines how pointer movement is turned into rotation.
type Style int

const (
	// Rotating follows the bearing from the knob center to the pointer.
	Rotating Style = iota
	// SliderHorizontal turns right for rightward movement, left for leftward.
	SliderHorizontal
	// SliderVertical turns right for upward movement, left for downward.
	SliderVertical
)

// Styles returns every interaction style in cycling order.
func Styles() []Style {
	return []Style{Rotating, SliderHorizontal, SliderVertical}
}

// String returns the canonical name of the style.
func (s Style) String() string {
	switch s {
	case Rotating:
		return "rotating"
	case SliderHorizontal:
		return "horizontal"
	case SliderVertical:
		return "vertical"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// Next returns the style after s in cycling order.
func (s Style) Next() Style {
	all := Styles()
	for i, st := range all {
		if st == s {
			return all[(i+1)%len(all)]
		}
	}

	return Rotating
}

// ParseStyle parses a style name. Matching is case-insensitive.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rotating", "rotate":
		return Rotating, nil
	case "horizontal", "slider-horizontal", "slider_horizontal":
		return SliderHorizontal, nil
	case "vertical", "slider-vertical", "slider_vertical":
		return SliderVertical, nil
	default:
		return Rotating, fmt.Errorf("unknown interaction style %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	if _, err := ParseStyle(s.String()); err != nil {
		return nil, err
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(text []byte) error {
	st, err := ParseStyle(string(text))
	if err != nil {
		return err
	}

	*s = st

	return nil
}
