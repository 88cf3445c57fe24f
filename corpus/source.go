// Package corpus reads training text and turns it into language profiles.
package corpus

import (
	"bufio"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"
	"github.com/tsingjyujing/langdetect/errs"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var logger = logrus.StandardLogger()

const (
	// AbstractTag is the element holding text in Wikipedia abstract dumps.
	AbstractTag = "abstract"
	// AbstractThreshold is the minimum length of a usable abstract.
	AbstractThreshold = 100

	maxLineSize = 16 * 1024 * 1024
)

// Source yields training fragments one by one. Iteration stops at the first
// error returned by fn.
type Source interface {
	Each(ctx context.Context, fn func(fragment string) error) error
}

// Open opens a training file, decompressing it when gz is set or the name
// ends in ".gz".
func Open(path string, gz bool) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(err, errs.CannotOpenTrainData, "cannot open training data")
	}
	if !gz && !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, errs.Wrap(err, errs.CannotOpenTrainData, "cannot open gzip training data")
	}
	return &gzipFile{Reader: zr, file: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	return errors.Join(g.Reader.Close(), g.file.Close())
}

// Decode converts r from the named charset to UTF-8. Labels follow the WHATWG
// encoding standard, e.g. "shift_jis", "gbk" or "windows-1252".
func Decode(r io.Reader, label string) (io.Reader, error) {
	if label == "" || strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8") {
		return r, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, errs.Wrap(err, errs.InitParam, "unknown encoding "+label)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// TextSource yields every line of a plain text stream.
type TextSource struct {
	r io.Reader
}

func NewTextSource(r io.Reader) *TextSource {
	return &TextSource{r: r}
}

func (s *TextSource) Each(ctx context.Context, fn func(fragment string) error) error {
	scanner := bufio.NewScanner(s.r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errs.Wrap(err, errs.CannotOpenTrainData, "cannot read training data")
	}
	return nil
}

// AbstractSource yields the text of long enough <abstract> elements of a
// Wikipedia abstract XML dump.
type AbstractSource struct {
	r         io.Reader
	extractor *TagExtractor
}

func NewAbstractSource(r io.Reader) *AbstractSource {
	return &AbstractSource{r: r, extractor: NewTagExtractor(AbstractTag, AbstractThreshold)}
}

// Count is the number of abstracts yielded so far.
func (s *AbstractSource) Count() int {
	return s.extractor.Count()
}

func (s *AbstractSource) Each(ctx context.Context, fn func(fragment string) error) error {
	decoder := xml.NewDecoder(s.r)
	decoder.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		return Decode(input, label)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errs.Wrap(err, errs.TrainDataFormat, "training data is an invalid XML")
		}
		switch t := token.(type) {
		case xml.StartElement:
			s.extractor.SetTag(t.Name.Local)
		case xml.CharData:
			s.extractor.Add(string(t))
		case xml.EndElement:
			if fragment, ok := s.extractor.CloseTag(); ok {
				if err := fn(fragment); err != nil {
					return err
				}
			}
		}
	}
}
