package bridge

import "fmt"

// Fallible operations encode their outcome in the output buffer itself:
// one leading discriminant byte, then either the payload or an error
// message in UTF-8.
const (
	frameOk    byte = 0x00
	frameError byte = 0x01
)

func okFrame(payload []byte) []byte {
	out := make([]byte, 1+len(payload))
	out[0] = frameOk
	copy(out[1:], payload)
	return out
}

func errorFrame(msg string) []byte {
	out := make([]byte, 1+len(msg))
	out[0] = frameError
	copy(out[1:], msg)
	return out
}

// DecodeFrame splits a fallible operation's output into its payload or
// error. Hosts use it to interpret buffers returned by fallible ops.
func DecodeFrame(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("bridge: empty result frame")
	}
	switch data[0] {
	case frameOk:
		return data[1:], nil
	case frameError:
		return nil, fmt.Errorf("%s", data[1:])
	default:
		return nil, fmt.Errorf("bridge: bad frame discriminant 0x%02x", data[0])
	}
}
