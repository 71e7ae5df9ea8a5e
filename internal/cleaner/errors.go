package cleaner

import (
	"errors"
	"fmt"
)

// ErrNoReadableText is returned when every page of a document extracted to
// an empty string. No output is produced.
var ErrNoReadableText = errors.New("no readable text found in this document")

// ErrRebuild wraps failures while writing the clean document.
var ErrRebuild = errors.New("rebuild document")

// noTextMessage is what a user sees for ErrNoReadableText.
const noTextMessage = "No readable text found in this PDF."

// ExtractionError reports that the input could not be opened or parsed.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// UserMessage maps an error from Process to the text shown to a user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoReadableText):
		return noTextMessage
	default:
		return "Processing error: " + err.Error()
	}
}
