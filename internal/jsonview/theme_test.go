package jsonview

import "fmt"

// labelTheme returns colors that name the palette slot they came from,
// which keeps assertions readable.
type labelTheme string

func (t labelTheme) Name() string { return string(t) }

func (t labelTheme) Color(tone Tone, intensity Intensity) Color {
	return Color(fmt.Sprintf("%s.%s", toneName(tone), intensityName(intensity)))
}

func (t labelTheme) Text(tone Tone) Color {
	return Color(toneName(tone) + ".text")
}

func toneName(t Tone) string {
	return [...]string{"background", "primary", "secondary", "success"}[t]
}

func intensityName(i Intensity) string {
	return [...]string{"base", "weak", "strong"}[i]
}

const testTheme = labelTheme("label")
