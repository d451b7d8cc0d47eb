package todo

import (
	"errors"
	"unicode/utf8"
)

// ValidateText checks a submitted todo text. The value comes from a decoded
// body, so it may be absent or a non-string.
func ValidateText(v interface{}) (string, error) {
	if v == nil {
		return "", errors.New("Missing todo text")
	}
	text, ok := v.(string)
	if !ok {
		return "", errors.New("todo text is not a text")
	}
	if text == "" {
		return "", errors.New("Missing todo text")
	}
	if n := utf8.RuneCountInString(text); n < 3 || n > 100 {
		return "", errors.New("todo text length should be 3-100")
	}
	return text, nil
}
