// Reference detection with github.com/pemistahl/lingua-go, used to compare
// trained profiles against an independent detector.
package text

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"
	"github.com/samber/lo"
)

// BaselineDetector detects the language of a text with lingua, restricted to
// the ISO 639-1 codes it was built for.
type BaselineDetector struct {
	detector lingua.LanguageDetector
	codes    []string
}

// NewBaselineDetector builds a lingua detector over the given ISO 639-1 codes.
// Codes lingua does not know are ignored; at least two must remain.
func NewBaselineDetector(codes []string) (*BaselineDetector, error) {
	languages := lo.FilterMap(codes, func(code string, _ int) (lingua.Language, bool) {
		iso := lingua.GetIsoCode639_1FromValue(BaseCode(code))
		lang := lingua.GetLanguageFromIsoCode639_1(iso)
		return lang, lang != lingua.Unknown
	})
	languages = lo.Uniq(languages)
	if len(languages) < 2 {
		return nil, fmt.Errorf("baseline detector needs at least 2 known languages, got %d", len(languages))
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		Build()

	return &BaselineDetector{
		detector: detector,
		codes: lo.Map(languages, func(l lingua.Language, _ int) string {
			return strings.ToLower(l.IsoCode639_1().String())
		}),
	}, nil
}

// Codes returns the ISO 639-1 codes the detector chooses from.
func (d *BaselineDetector) Codes() []string {
	return d.codes
}

// Detect returns the lower-case ISO 639-1 code of the detected language, or
// "" for empty or undetectable text.
func (d *BaselineDetector) Detect(text string) string {
	if text == "" {
		return ""
	}
	detectedLang, exists := d.detector.DetectLanguageOf(text)
	if !exists {
		return ""
	}
	return strings.ToLower(detectedLang.IsoCode639_1().String())
}

// BaseCode strips a region suffix, "zh-cn" -> "zh".
func BaseCode(code string) string {
	code = strings.ToLower(code)
	if i := strings.IndexAny(code, "-_"); i > 0 {
		return code[:i]
	}
	return code
}
