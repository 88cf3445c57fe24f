package corpus

import (
	"strings"
	"unicode/utf8"
)

// TagExtractor collects the character data of one element name and keeps it
// when it is longer than a threshold.
type TagExtractor struct {
	target    string
	threshold int
	buf       strings.Builder
	tag       string
	count     int
}

func NewTagExtractor(target string, threshold int) *TagExtractor {
	return &TagExtractor{target: target, threshold: threshold}
}

// SetTag records the element being read.
func (e *TagExtractor) SetTag(tag string) {
	e.tag = tag
}

// Add appends character data when inside the target element.
func (e *TagExtractor) Add(data string) {
	if e.inTarget() {
		e.buf.WriteString(data)
	}
}

// CloseTag ends the current element. It returns the collected text when the
// element was the target and the text is longer than the threshold.
func (e *TagExtractor) CloseTag() (string, bool) {
	defer e.Clear()
	if !e.inTarget() || utf8.RuneCountInString(e.buf.String()) <= e.threshold {
		return "", false
	}
	e.count++
	return e.buf.String(), true
}

func (e *TagExtractor) inTarget() bool {
	return e.tag != "" && e.tag == e.target
}

// Clear drops the collected text and the current element.
func (e *TagExtractor) Clear() {
	e.buf.Reset()
	e.tag = ""
}

// Count is the number of texts returned by CloseTag.
func (e *TagExtractor) Count() int {
	return e.count
}
