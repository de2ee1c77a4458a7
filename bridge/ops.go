package bridge

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/chazu/kiln/rt"
	"github.com/chazu/kiln/snapshot"
	"github.com/chazu/kiln/store"
)

// Hash copies data into a runtime buffer, hashes it, and returns a handle
// to the 8-byte big-endian digest.
func (b *Bridge) Hash(data []byte) Handle {
	in := rt.BytesFromSlice(data)
	h := rt.BytesHash(in)
	rt.Release(in)

	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, h)
	return b.hold(out)
}

// BytesToHex returns a handle to the lowercase hex encoding of data.
func (b *Bridge) BytesToHex(data []byte) Handle {
	in := rt.BytesFromSlice(data)
	out := []byte(hex.EncodeToString(rt.BytesData(in)))
	rt.Release(in)
	return b.hold(out)
}

// HexToBytes decodes a hex payload. Fallible: the output is a result
// frame.
func (b *Bridge) HexToBytes(data []byte) Handle {
	decoded, err := hex.DecodeString(string(data))
	if err != nil {
		return b.hold(errorFrame(fmt.Sprintf("hex: %v", err)))
	}
	out := rt.BytesFromSlice(decoded)
	frame := okFrame(rt.BytesData(out))
	rt.Release(out)
	return b.hold(frame)
}

// ValidateUTF8 returns a handle to a single byte: 0x01 when data is
// well-formed UTF-8, 0x00 otherwise.
func (b *Bridge) ValidateUTF8(data []byte) Handle {
	s := rt.MkStringFromBytes(data)
	ok := rt.StringValidate(s)
	rt.Release(s)
	if ok {
		return b.hold([]byte{1})
	}
	return b.hold([]byte{0})
}

// ExtractBytes returns a handle to the sub-range [start, stop) of data,
// with the runtime's clamping rules.
func (b *Bridge) ExtractBytes(data []byte, start, stop int) Handle {
	in := rt.BytesFromSlice(data)
	sub := rt.BytesExtract(in, start, stop)
	out := append([]byte(nil), rt.BytesData(sub)...)
	rt.Release(sub)
	rt.Release(in)
	return b.hold(out)
}

// Concat returns a handle to x followed by y.
func (b *Bridge) Concat(x, y []byte) Handle {
	dst := rt.BytesFromSlice(x)
	src := rt.BytesFromSlice(y)
	dst = rt.BytesCopySlice(src, 0, dst, len(x), len(y), true)
	out := append([]byte(nil), rt.BytesData(dst)...)
	rt.Release(src)
	rt.Release(dst)
	return b.hold(out)
}

// StorePut writes data to the content store. Fallible: the Ok payload is
// the hex content key.
func (b *Bridge) StorePut(data []byte) Handle {
	if b.st == nil {
		return b.unavailable("store.put")
	}
	key, err := b.st.Put(data)
	if err != nil {
		return b.hold(errorFrame(fmt.Sprintf("store put: %v", err)))
	}
	return b.hold(okFrame([]byte(key)))
}

// StoreGet reads the blob for a hex content key. Fallible.
func (b *Bridge) StoreGet(key []byte) Handle {
	if b.st == nil {
		return b.unavailable("store.get")
	}
	data, err := b.st.Get(string(key))
	if err != nil {
		if errors.Is(err, store.ErrBlobNotFound) {
			return b.hold(errorFrame(fmt.Sprintf("store get: no blob for key %s", key)))
		}
		return b.hold(errorFrame(fmt.Sprintf("store get: %v", err)))
	}
	return b.hold(okFrame(data))
}

// Snapshot encodes data, wrapped as a runtime byte buffer, into a value
// snapshot. Fallible.
func (b *Bridge) Snapshot(data []byte) Handle {
	in := rt.BytesFromSlice(data)
	img, err := snapshot.Encode(in)
	rt.Release(in)
	if err != nil {
		return b.hold(errorFrame(fmt.Sprintf("snapshot: %v", err)))
	}
	return b.hold(okFrame(img))
}

// RestoreSnapshot decodes a value snapshot whose root is a byte buffer
// and returns its contents. Fallible.
func (b *Bridge) RestoreSnapshot(img []byte) Handle {
	v, err := snapshot.Decode(img)
	if err != nil {
		return b.hold(errorFrame(fmt.Sprintf("restore: %v", err)))
	}
	if v.IsScalar() || v.Obj().Tag() != rt.TagBytes {
		rt.Release(v)
		return b.hold(errorFrame("restore: snapshot root is not a byte buffer"))
	}
	out := append([]byte(nil), rt.BytesData(v)...)
	rt.Release(v)
	return b.hold(okFrame(out))
}

// unavailable reports an operation the sandbox does not provide, as an
// ordinary error frame built from the runtime's result convention.
func (b *Bridge) unavailable(op string) Handle {
	r := rt.CapabilityUnavailable(op)
	frame := errorFrame(rt.ResultMessage(r))
	rt.Release(r)
	b.log.Debugf("unavailable operation requested: %s", op)
	return b.hold(frame)
}

// Sha256 is not provided in this sandbox.
func (b *Bridge) Sha256(data []byte) Handle {
	return b.unavailable("sha256")
}

// HmacSha256 is not provided in this sandbox.
func (b *Bridge) HmacSha256(key, data []byte) Handle {
	return b.unavailable("hmac-sha256")
}

// X25519 is not provided in this sandbox.
func (b *Bridge) X25519(scalar, point []byte) Handle {
	return b.unavailable("x25519")
}

// ReadFile is not provided in this sandbox; the core never touches the
// filesystem.
func (b *Bridge) ReadFile(path []byte) Handle {
	return b.unavailable("read-file")
}

// RandomBytes returns n bytes of a fixed 0xA5 fill. The sandbox has no
// entropy source; the pattern is a placeholder and must never be treated
// as random.
func (b *Bridge) RandomBytes(n int) Handle {
	if n < 0 {
		n = 0
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = 0xA5
	}
	return b.hold(out)
}
