package rgbmatrix

import (
	"fmt"
	"image"
)

// Diagnostic tells why a call wrote less than it could have.
type Diagnostic uint8

// Diagnostics.
const (
	OK                Diagnostic = iota
	NothingVisible               // the image was clipped away entirely
	UnsupportedFormat            // the image format can not be decoded, nothing was drawn
	InvalidArguments             // the call was rejected
)

func (d Diagnostic) String() string {
	switch d {
	case OK:
		return "ok"
	case NothingVisible:
		return "nothing visible"
	case UnsupportedFormat:
		return "unsupported format"
	case InvalidArguments:
		return "invalid arguments"
	default:
		return fmt.Sprintf("diagnostic(%d)", uint8(d))
	}
}

// Result of a drawing call. Only [InvalidArguments] is an error; every other outcome, including
// drawing nothing, is a success.
type Result struct {
	Diagnostic Diagnostic

	// Rect is the region written.
	Rect image.Rectangle

	// Reason describes a rejected call.
	Reason string
}

// Err returns an error wrapping [ErrInvalidArguments] for rejected calls, nil otherwise.
func (r Result) Err() error {
	if r.Diagnostic != InvalidArguments {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidArguments, r.Reason)
}
