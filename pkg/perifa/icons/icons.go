// Package icons renders the notification icons shared by toasts, modals and
// alerts, either as inline SVG markup for the DOM or as PNG rasters for the
// dev server.
package icons

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/perifanotoque/perifa/pkg/perifa/constants"
)

var (
	ErrUnknownKind  = errors.New("unknown icon kind")
	ErrInvalidSize  = errors.New("icon size out of range")
	ErrInvalidColor = errors.New("invalid hex color")
)

// Size bounds accepted by Rasterize.
const (
	MinSize = 8
	MaxSize = 512
)

// Kind identifies a notification icon. It doubles as the notification type
// of the widgets that show it.
type Kind int

const (
	KindInfo    Kind = iota // Informational message
	KindSuccess             // Completed action
	KindError               // Failed action
	KindWarning             // Needs attention
	KindConfirm             // Asks for a decision
)

var kindNames = map[Kind]string{
	KindInfo:    "info",
	KindSuccess: "success",
	KindError:   "error",
	KindWarning: "warning",
	KindConfirm: "confirm",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "info"
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindInfo, false
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindInfo, KindSuccess, KindError, KindWarning, KindConfirm}
}

func (k Kind) path() string {
	switch k {
	case KindSuccess:
		return constants.SuccessIconPath
	case KindError:
		return constants.ErrorIconPath
	case KindWarning:
		return constants.WarningIconPath
	default:
		return constants.InfoIconPath
	}
}

// DefaultColor is the fill used when rasterizing without an explicit color.
func (k Kind) DefaultColor() string {
	switch k {
	case KindSuccess:
		return "#16a34a"
	case KindError:
		return "#dc2626"
	case KindWarning:
		return "#d97706"
	default:
		return "#2563eb"
	}
}

// Markup returns the inline SVG for kind with the given class attribute. The
// icon inherits the text color of its container.
func Markup(kind Kind, class string) string {
	return fmt.Sprintf(
		`<svg class="%s" fill="currentColor" viewBox="%s"><path fill-rule="evenodd" d="%s" clip-rule="evenodd"></path></svg>`,
		html.EscapeString(class), constants.IconViewBox, kind.path(),
	)
}

// standalone is the document handed to oksvg, which has no notion of
// currentColor.
func standalone(kind Kind, fill string) string {
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s"><path fill-rule="evenodd" fill="%s" d="%s"/></svg>`,
		constants.IconViewBox, fill, expandArcFlags(kind.path()),
	)
}

// expandArcFlags rewrites path data so every argument is separated by a
// space. Minified paths pack the two single-digit arc flags against their
// neighbours ("a8 8 0 100-16"), which oksvg parses as one number.
func expandArcFlags(d string) string {
	var b strings.Builder
	b.Grow(len(d) + len(d)/2)

	arc := false
	arg := 0
	for i := 0; i < len(d); {
		c := d[i]
		switch {
		case c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r':
			i++
			continue
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			arc = c == 'a' || c == 'A'
			arg = 0
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(c)
			i++
			continue
		}

		// Arc arguments: rx ry rotation large-arc sweep x y.
		end := scanNumber(d, i)
		if arc && (arg%7 == 3 || arg%7 == 4) {
			end = i + 1
		}
		b.WriteByte(' ')
		b.WriteString(d[i:end])
		i = end
		arg++
	}
	return b.String()
}

// scanNumber returns the end of the number starting at d[i].
func scanNumber(d string, i int) int {
	j := i
	if j < len(d) && (d[j] == '+' || d[j] == '-') {
		j++
	}
	for j < len(d) && d[j] >= '0' && d[j] <= '9' {
		j++
	}
	if j < len(d) && d[j] == '.' {
		j++
		for j < len(d) && d[j] >= '0' && d[j] <= '9' {
			j++
		}
	}
	if j < len(d) && (d[j] == 'e' || d[j] == 'E') {
		k := j + 1
		if k < len(d) && (d[k] == '+' || d[k] == '-') {
			k++
		}
		if k < len(d) && d[k] >= '0' && d[k] <= '9' {
			for k < len(d) && d[k] >= '0' && d[k] <= '9' {
				k++
			}
			j = k
		}
	}
	if j == i {
		return i + 1
	}
	return j
}

// Rasterize draws kind into a size x size image filled with hex ("#rrggbb" or
// "#rgb"). An empty hex uses the kind's default color.
func Rasterize(kind Kind, size int, hex string) (*image.RGBA, error) {
	if _, ok := kindNames[kind]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidSize, size, MinSize, MaxSize)
	}
	if hex == "" {
		hex = kind.DefaultColor()
	}
	fill, err := ParseHexColor(hex)
	if err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(standalone(kind, hexString(fill))), oksvg.StrictErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parsing %s icon: %w", kind, err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// RasterizePNG is Rasterize encoded as PNG.
func RasterizePNG(kind Kind, size int, hex string) ([]byte, error) {
	img, err := Rasterize(kind, size, hex)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding %s icon: %w", kind, err)
	}
	return buf.Bytes(), nil
}

// ParseHexColor parses "#rrggbb", "#rgb" or the same without the hash.
func ParseHexColor(hex string) (color.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func hexString(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
