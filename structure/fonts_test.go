package structure

import (
	"testing"

	"github.com/tsawler/structura/model"
)

func span(text string, size float64, bold bool, page int, y float64) model.TextSpan {
	return model.TextSpan{
		Text:     text,
		Bounds:   model.NewRect(10, y, 200, y+size),
		FontSize: size,
		Bold:     bold,
		Page:     page,
	}
}

func TestAnalyzeFontsNormalSizeByCharCount(t *testing.T) {
	// One long body span at 10pt outweighs several short spans at 24pt.
	spans := map[int][]model.TextSpan{
		1: {
			span("The quick brown fox jumps over the lazy dog repeatedly.", 10, false, 1, 100),
			span("BIG", 24, true, 1, 10),
			span("HUGE", 24, true, 1, 40),
		},
	}

	profile := AnalyzeFonts(spans, 14, 1.2)
	if profile.Empty() {
		t.Fatal("Expected a non-empty profile")
	}
	if profile.NormalSize != 10 {
		t.Errorf("Expected normal size 10, got %v", profile.NormalSize)
	}
	// 10 * 1.2 = 12 is below the configured minimum of 14.
	if profile.HeadingThreshold != 14 {
		t.Errorf("Expected threshold 14, got %v", profile.HeadingThreshold)
	}
}

func TestAnalyzeFontsRatioAboveMinimum(t *testing.T) {
	spans := map[int][]model.TextSpan{
		1: {span("body text that dominates the character count easily", 20, false, 1, 100)},
	}

	profile := AnalyzeFonts(spans, 14, 1.2)
	if profile.HeadingThreshold != 24 {
		t.Errorf("Expected threshold 24 (20 * 1.2), got %v", profile.HeadingThreshold)
	}
}

func TestAnalyzeFontsEmptyInput(t *testing.T) {
	profile := AnalyzeFonts(nil, 14, 1.2)
	if !profile.Empty() {
		t.Error("Expected empty profile for no spans")
	}

	profile = AnalyzeFonts(map[int][]model.TextSpan{1: {span("", 12, false, 1, 0)}}, 14, 1.2)
	if !profile.Empty() {
		t.Error("Expected empty profile when all spans are blank")
	}
}

func TestAnalyzeFontsSizesAscending(t *testing.T) {
	spans := map[int][]model.TextSpan{
		1: {
			span("aaaa", 12, false, 1, 10),
			span("bb", 18, false, 1, 40),
			span("cc", 9, false, 1, 70),
		},
	}

	profile := AnalyzeFonts(spans, 14, 1.2)
	want := []float64{9, 12, 18}
	if len(profile.Sizes) != len(want) {
		t.Fatalf("Expected %d sizes, got %d", len(want), len(profile.Sizes))
	}
	for i, size := range want {
		if profile.Sizes[i] != size {
			t.Errorf("Sizes[%d]: expected %v, got %v", i, size, profile.Sizes[i])
		}
	}
}
