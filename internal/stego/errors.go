package stego

import (
	"errors"
	"fmt"
)

var (
	// ErrMessageTooLarge is matched by *MessageTooLargeError.
	ErrMessageTooLarge = errors.New("message exceeds image capacity")

	// ErrUnsupportedCharacter is matched by *UnsupportedCharacterError.
	ErrUnsupportedCharacter = errors.New("unsupported character")
)

// MessageTooLargeError reports a message longer than the image can carry.
type MessageTooLargeError struct {
	Length   int // Message length in characters
	Capacity int // Maximum characters the image can hold
}

func (e *MessageTooLargeError) Error() string {
	return fmt.Sprintf("the message (%d characters) exceeds the maximum number of characters (%d)",
		e.Length, e.Capacity)
}

func (e *MessageTooLargeError) Unwrap() error { return ErrMessageTooLarge }

// UnsupportedCharacterError reports a character that cannot be stored as a
// single non-zero byte. Zero is rejected because it is the end-of-message
// value.
type UnsupportedCharacterError struct {
	Char  rune // The offending character
	Index int  // Character position within the message (0-based)
}

func (e *UnsupportedCharacterError) Error() string {
	return fmt.Sprintf("unsupported character %U at position %d: only characters U+0001 to U+00FF can be hidden",
		e.Char, e.Index)
}

func (e *UnsupportedCharacterError) Unwrap() error { return ErrUnsupportedCharacter }
