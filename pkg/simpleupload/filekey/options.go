package filekey

// Option is a functional option for configuring a Codec
type Option func(*Codec)

// WithAlphabet sets the base alphabet used for application ID encoding.
// Every character should be URL-safe; the alphabet's size determines the
// encoding base. Alphabets shorter than two characters are ignored.
func WithAlphabet(alphabet string) Option {
	return func(c *Codec) {
		if len(alphabet) >= 2 {
			c.alphabet = alphabet
		}
	}
}

// WithMinLength sets the fixed length of the encoded application ID
// prefix. Values below one are ignored.
func WithMinLength(length int) Option {
	return func(c *Codec) {
		if length >= 1 {
			c.minLength = length
		}
	}
}
