package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Palette 解析后的颜色
type Palette struct {
	Background color.RGBA
	Panel      color.RGBA
	Session    color.RGBA
	Break      color.RGBA
	Text       color.RGBA
	Button     color.RGBA
}

// Palette 解析主题中的全部颜色
func (t ThemeConfig) Palette() (Palette, error) {
	var p Palette
	fields := []struct {
		name  string
		value string
		dst   *color.RGBA
	}{
		{"background", t.Background, &p.Background},
		{"panel", t.Panel, &p.Panel},
		{"session", t.Session, &p.Session},
		{"break", t.Break, &p.Break},
		{"text", t.Text, &p.Text},
		{"button", t.Button, &p.Button},
	}
	for _, f := range fields {
		c, err := ParseHexColor(f.value)
		if err != nil {
			return Palette{}, fmt.Errorf("theme.%s: %w", f.name, err)
		}
		*f.dst = c
	}
	return p, nil
}

// ParseHexColor 解析 #RRGGBB 或 #RRGGBBAA
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q must be #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
