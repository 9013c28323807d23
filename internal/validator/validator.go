// Package validator checks that a piece of text is written in an expected language.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/valpere/urduproxy/internal/detector"
)

// minValidationLength is the minimum rune count required to attempt language detection.
const minValidationLength = 20

var ErrEmpty = errors.New("text is empty")

// MismatchError reports text detected as a different language than expected.
type MismatchError struct {
	Expected string
	Detected string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("expected %s but detected %s", e.Expected, e.Detected)
}

type Validator struct {
	det *detector.Detector
}

// New creates a Validator. det may be shared with other callers; nil builds
// a detector for the default language set.
func New(det *detector.Detector) *Validator {
	if det == nil {
		det = detector.New()
	}
	return &Validator{det: det}
}

// Check returns nil when text appears to be written in lang.
//
// Short texts and texts whose language cannot be determined pass. An empty
// lang disables the check.
func (v *Validator) Check(text, lang string) error {
	if lang == "" {
		return nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmpty
	}

	if len([]rune(text)) < minValidationLength {
		return nil
	}

	detected, ok := v.det.DetectISO(text)
	if !ok {
		return nil
	}

	if !strings.EqualFold(detected, lang) {
		return &MismatchError{Expected: strings.ToLower(lang), Detected: detected}
	}
	return nil
}
