// Package avatar renders initials avatars for accounts that have not
// uploaded a picture. Colors are stable per user so the same account keeps
// the same avatar across sessions.
package avatar

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	_ "image/jpeg"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/types"
)

const renderSize = 512

var defaultPalette = []color.NRGBA{
	{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
	{R: 0x8b, G: 0x5c, B: 0xf6, A: 0xff},
	{R: 0xec, G: 0x48, B: 0x99, A: 0xff},
	{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff},
	{R: 0x10, G: 0xb9, B: 0x81, A: 0xff},
	{R: 0x06, G: 0xb6, B: 0xd4, A: 0xff},
	{R: 0x64, G: 0x74, B: 0x8b, A: 0xff},
}

type Generator struct {
	log      *logger.Logger
	fontFace font.Face
	palette  []color.NRGBA
}

func NewGenerator(log *logger.Logger) (*Generator, error) {
	fontPath := strings.TrimSpace(os.Getenv("AVATAR_FONT"))
	if fontPath == "" {
		return nil, fmt.Errorf("Env var AVATAR_FONT is empty")
	}
	face, err := loadFontFace(fontPath, renderSize*0.42)
	if err != nil {
		return nil, fmt.Errorf("could not load avatar font: %w", err)
	}
	return &Generator{
		log:      log.With("component", "AvatarGenerator"),
		fontFace: face,
		palette:  defaultPalette,
	}, nil
}

// Initials renders the user's initials over their stable background color.
func (g *Generator) Initials(user types.User) (bytes.Buffer, error) {
	var buf bytes.Buffer

	dc := gg.NewContext(renderSize, renderSize)
	dc.SetColor(g.backgroundFor(user))
	dc.Clear()

	dc.SetFontFace(g.fontFace)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(initialsFor(user), renderSize/2, renderSize/2, 0.5, 0.54)

	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("encode avatar: %w", err)
	}
	return buf, nil
}

// Thumbnail scales an uploaded image down to size x size PNG.
func (g *Generator) Thumbnail(raw []byte, size int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode uploaded avatar: %w", err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) backgroundFor(user types.User) color.NRGBA {
	if c, ok := parseHexColor(user.AvatarColor); ok {
		return c
	}
	h := fnv.New32a()
	_, _ = h.Write(user.ID[:])
	return g.palette[int(h.Sum32())%len(g.palette)]
}

func initialsFor(user types.User) string {
	first := firstRune(user.FirstName)
	last := firstRune(user.LastName)
	s := strings.ToUpper(first + last)
	if s == "" {
		s = strings.ToUpper(firstRune(user.Email))
	}
	if s == "" {
		s = "?"
	}
	return s
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

func parseHexColor(s string) (color.NRGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, false
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, true
}

func loadFontFace(path string, points float64) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(raw)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}
