package rt

// UTF-8 encoding and decoding at byte level. The standard library's
// unicode/utf8 has different invalid-input behavior than the container
// contract requires (sequence-length stepping from leading-byte high bits,
// whole-string validation verdicts), so the byte-level forms live here.

// CharUTF8Size returns the encoded size of a codepoint: 1-4 bytes by the
// standard range boundaries.
func CharUTF8Size(c rune) int {
	switch {
	case c < 0x80:
		return 1
	case c < 0x800:
		return 2
	case c < 0x10000:
		return 3
	default:
		return 4
	}
}

// utf8EncodeChar writes the UTF-8 encoding of c into buf (which must hold
// at least 4 bytes) and returns the number of bytes written.
func utf8EncodeChar(buf []byte, c rune) int {
	switch {
	case c < 0x80:
		buf[0] = byte(c)
		return 1
	case c < 0x800:
		buf[0] = 0xC0 | byte(c>>6)
		buf[1] = 0x80 | byte(c&0x3F)
		return 2
	case c < 0x10000:
		buf[0] = 0xE0 | byte(c>>12)
		buf[1] = 0x80 | byte((c>>6)&0x3F)
		buf[2] = 0x80 | byte(c&0x3F)
		return 3
	default:
		buf[0] = 0xF0 | byte(c>>18)
		buf[1] = 0x80 | byte((c>>12)&0x3F)
		buf[2] = 0x80 | byte((c>>6)&0x3F)
		buf[3] = 0x80 | byte(c&0x3F)
		return 4
	}
}

// utf8DecodeChar decodes the codepoint at byte offset i, returning it and
// the sequence length consumed. The leading byte's high bits pick the
// length; continuation bytes contribute their low six bits. Truncated
// sequences at the end of data decode to InvalidChar with the remaining
// length.
func utf8DecodeChar(data []byte, i int) (rune, int) {
	c := data[i]
	switch {
	case c < 0x80:
		return rune(c), 1
	case c < 0xE0:
		if i+1 >= len(data) {
			return InvalidChar, len(data) - i
		}
		return rune(c&0x1F)<<6 | rune(data[i+1]&0x3F), 2
	case c < 0xF0:
		if i+2 >= len(data) {
			return InvalidChar, len(data) - i
		}
		return rune(c&0x0F)<<12 | rune(data[i+1]&0x3F)<<6 | rune(data[i+2]&0x3F), 3
	default:
		if i+3 >= len(data) {
			return InvalidChar, len(data) - i
		}
		return rune(c&0x07)<<18 | rune(data[i+1]&0x3F)<<12 |
			rune(data[i+2]&0x3F)<<6 | rune(data[i+3]&0x3F), 4
	}
}

// utf8CountChars counts complete UTF-8 sequences by leading-byte stepping.
func utf8CountChars(data []byte) int {
	n := 0
	for i := 0; i < len(data); n++ {
		c := data[i]
		switch {
		case c < 0x80:
			i++
		case c < 0xE0:
			i += 2
		case c < 0xF0:
			i += 3
		default:
			i += 4
		}
	}
	return n
}

// utf8Validate reports whether data is well-formed UTF-8. It rejects lone
// continuation bytes, missing continuation bytes, overlong encodings
// (leading bytes below 0xC2) and leading bytes above the valid codepoint
// range (0xF5 and up).
func utf8Validate(data []byte) bool {
	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c < 0x80:
			i++
		case c < 0xC2:
			// Lone continuation byte or overlong two-byte lead.
			return false
		case c < 0xE0:
			if len(data)-i < 2 || !isCont(data[i+1]) {
				return false
			}
			i += 2
		case c < 0xF0:
			if len(data)-i < 3 || !isCont(data[i+1]) || !isCont(data[i+2]) {
				return false
			}
			i += 3
		case c < 0xF5:
			if len(data)-i < 4 || !isCont(data[i+1]) || !isCont(data[i+2]) || !isCont(data[i+3]) {
				return false
			}
			i += 4
		default:
			return false
		}
	}
	return true
}

func isCont(b byte) bool {
	return b&0xC0 == 0x80
}
