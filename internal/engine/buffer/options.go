package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the line ending style text is normalized to.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

// WithMaxLen caps the buffer length in characters. Inserts that would grow
// the buffer past the cap fail with ErrTooLarge. Zero means unlimited.
func WithMaxLen(n int) Option {
	return func(b *Buffer) {
		if n >= 0 {
			b.maxLen = n
		}
	}
}
