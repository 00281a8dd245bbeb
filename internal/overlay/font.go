package overlay

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontSource identifies which fallback step produced a resolved font face.
type FontSource int

const (
	// FontRequested means the configured font file loaded successfully.
	FontRequested FontSource = iota
	// FontSystem means a platform default font was substituted.
	FontSystem
	// FontBuiltin means the embedded Go Regular face was substituted.
	FontBuiltin
)

func (s FontSource) String() string {
	switch s {
	case FontRequested:
		return "requested"
	case FontSystem:
		return "system"
	default:
		return "builtin"
	}
}

// Font pairs a usable face with the fallback step that produced it.
type Font struct {
	Face   font.Face
	Source FontSource
	Path   string
}

// systemFontPaths is the ordered fallback list tried when the requested font
// cannot be loaded.
var systemFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/Library/Fonts/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

// ResolveFont loads the requested font file, cascading through platform
// default paths and finally the embedded Go Regular face. It never fails: the
// worst case is the builtin face at the requested size.
func ResolveFont(path string, size int) Font {
	return resolveFont(path, systemFontPaths, size)
}

func resolveFont(path string, fallbacks []string, size int) Font {
	if path != "" {
		if face, ok := loadFace(path, size); ok {
			return Font{Face: face, Source: FontRequested, Path: path}
		}
	}

	for _, candidate := range fallbacks {
		if face, ok := loadFace(candidate, size); ok {
			return Font{Face: face, Source: FontSystem, Path: candidate}
		}
	}

	return Font{Face: builtinFace(size), Source: FontBuiltin}
}

func loadFace(path string, size int) (font.Face, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, false
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, false
	}
	return face, true
}

func builtinFace(size int) font.Face {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		// The embedded TTF is a compile-time constant; parsing it cannot
		// fail at runtime.
		panic("parse embedded font: " + err.Error())
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic("build embedded face: " + err.Error())
	}
	return face
}
