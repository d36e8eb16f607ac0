package charset

import (
	"errors"

	"github.com/saintfish/chardet"
	htmlcharset "golang.org/x/net/html/charset"
)

// ErrNotDetected is returned by a Detector that cannot make a guess.
var ErrNotDetected = errors.New("charset: encoding not detected")

// Detection is a detector's guess for a byte string.
type Detection struct {
	Encoding   Name
	Confidence int // 0-100
	Language   string
}

// Detector guesses the encoding of raw bytes.
type Detector interface {
	Detect(data []byte) (Detection, error)
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func(data []byte) (Detection, error)

// Detect calls f(data).
func (f DetectorFunc) Detect(data []byte) (Detection, error) {
	return f(data)
}

// statDetector runs chardet's statistical detector and, when that has no
// answer, sniffs the bytes the way browsers do (BOM, then valid UTF-8).
type statDetector struct {
	text *chardet.Detector
}

// DefaultDetector returns the detector Redecode uses unless told otherwise.
func DefaultDetector() Detector {
	return &statDetector{text: chardet.NewTextDetector()}
}

func (d *statDetector) Detect(data []byte) (Detection, error) {
	if len(data) == 0 {
		return Detection{}, ErrNotDetected
	}

	if res, err := d.text.DetectBest(data); err == nil && res != nil && res.Charset != "" {
		if name, _, ok := Lookup(res.Charset); ok {
			return Detection{Encoding: name, Confidence: res.Confidence, Language: res.Language}, nil
		}
	}

	_, label, certain := htmlcharset.DetermineEncoding(data, "text/plain")
	name, _, ok := Lookup(label)
	if !ok {
		return Detection{}, ErrNotDetected
	}
	confidence := 10
	if certain {
		confidence = 100
	}
	return Detection{Encoding: name, Confidence: confidence}, nil
}
