package text

import (
	"fmt"

	"github.com/longbridgeapp/opencc"
)

// Converter rewrites a training fragment before it reaches a profile.
type Converter interface {
	Convert(text string) (string, error)
}

// ChineseConverter folds Chinese text between Traditional and Simplified script.
type ChineseConverter struct {
	cc   *opencc.OpenCC
	mode string
}

// NewChineseConverter creates a converter for an opencc mode.
// Supported modes are "t2s" (Traditional -> Simplified) and "s2t" (Simplified -> Traditional).
func NewChineseConverter(mode string) (*ChineseConverter, error) {
	switch mode {
	case "t2s", "s2t":
	default:
		return nil, fmt.Errorf("unsupported chinese conversion mode: %s", mode)
	}
	cc, err := opencc.New(mode)
	if err != nil {
		return nil, err
	}
	return &ChineseConverter{cc: cc, mode: mode}, nil
}

// Mode returns the opencc conversion mode.
func (c *ChineseConverter) Mode() string {
	return c.mode
}

func (c *ChineseConverter) Convert(text string) (string, error) {
	return c.cc.Convert(text)
}
