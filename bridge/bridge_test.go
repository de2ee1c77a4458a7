package bridge

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chazu/kiln/store"
)

func readAndFree(t *testing.T, b *Bridge, h Handle) []byte {
	t.Helper()
	data, err := b.Bytes(h)
	if err != nil {
		t.Fatalf("read handle: %v", err)
	}
	out := append([]byte(nil), data...)
	if err := b.Free(h); err != nil {
		t.Fatalf("free handle: %v", err)
	}
	return out
}

func TestHashDeterministicAcrossFree(t *testing.T) {
	b := New(nil)
	input := []byte("determinism check")

	first := readAndFree(t, b, b.Hash(input))
	second := readAndFree(t, b, b.Hash(input))
	if !bytes.Equal(first, second) {
		t.Errorf("hash of identical input differed across free: %x vs %x", first, second)
	}
	if b.Live() != 0 {
		t.Errorf("%d buffers still live after frees", b.Live())
	}
}

func TestHashKnownValue(t *testing.T) {
	b := New(nil)
	// (7*31+1)*31+2 = 6760 = 0x1a68
	got := readAndFree(t, b, b.Hash([]byte{1, 2}))
	want := []byte{0, 0, 0, 0, 0, 0, 0x1a, 0x68}
	if !bytes.Equal(got, want) {
		t.Errorf("hash = %x, want %x", got, want)
	}
}

func TestHexRoundTrip(t *testing.T) {
	b := New(nil)
	input := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	hexed := readAndFree(t, b, b.BytesToHex(input))
	if string(hexed) != "deadbeef" {
		t.Fatalf("hex = %q, want deadbeef", hexed)
	}

	frame := readAndFree(t, b, b.HexToBytes(hexed))
	payload, err := DecodeFrame(frame)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if !bytes.Equal(payload, input) {
		t.Errorf("round trip = %x, want %x", payload, input)
	}
}

func TestHexToBytesRejectsBadInput(t *testing.T) {
	b := New(nil)
	frame := readAndFree(t, b, b.HexToBytes([]byte("zz")))
	if _, err := DecodeFrame(frame); err == nil {
		t.Error("expected error frame for invalid hex")
	}
}

func TestValidateUTF8(t *testing.T) {
	b := New(nil)
	if got := readAndFree(t, b, b.ValidateUTF8([]byte("caf\xc3\xa9"))); got[0] != 1 {
		t.Error("valid UTF-8 reported invalid")
	}
	if got := readAndFree(t, b, b.ValidateUTF8([]byte{0xC2})); got[0] != 0 {
		t.Error("truncated sequence reported valid")
	}
}

func TestExtractBytesClamps(t *testing.T) {
	b := New(nil)
	input := []byte{10, 20, 30, 40}

	if got := readAndFree(t, b, b.ExtractBytes(input, 1, 3)); !bytes.Equal(got, []byte{20, 30}) {
		t.Errorf("extract(1,3) = %v", got)
	}
	if got := readAndFree(t, b, b.ExtractBytes(input, 2, 100)); !bytes.Equal(got, []byte{30, 40}) {
		t.Errorf("extract(2,100) = %v", got)
	}
	if got := readAndFree(t, b, b.ExtractBytes(input, 3, 1)); len(got) != 0 {
		t.Errorf("inverted range = %v, want empty", got)
	}
}

func TestConcat(t *testing.T) {
	b := New(nil)
	got := readAndFree(t, b, b.Concat([]byte("ab"), []byte("cd")))
	if string(got) != "abcd" {
		t.Errorf("concat = %q", got)
	}
}

func TestDoubleFreeDetected(t *testing.T) {
	b := New(nil)
	h := b.Hash([]byte("x"))
	if err := b.Free(h); err != nil {
		t.Fatalf("first free: %v", err)
	}
	if err := b.Free(h); err == nil {
		t.Error("second free succeeded")
	}
	if _, err := b.Bytes(h); err == nil {
		t.Error("read after free succeeded")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()
	b := New(st)

	blob := []byte("persist me")
	frame := readAndFree(t, b, b.StorePut(blob))
	key, err := DecodeFrame(frame)
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	frame = readAndFree(t, b, b.StoreGet(key))
	got, err := DecodeFrame(frame)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Errorf("store round trip = %q, want %q", got, blob)
	}
}

func TestStoreGetMissing(t *testing.T) {
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()
	b := New(st)

	frame := readAndFree(t, b, b.StoreGet([]byte("00000000deadbeef")))
	if _, err := DecodeFrame(frame); err == nil {
		t.Error("expected error frame for missing key")
	}
}

func TestStoreUnavailableWithoutStore(t *testing.T) {
	b := New(nil)
	frame := readAndFree(t, b, b.StorePut([]byte("x")))
	if _, err := DecodeFrame(frame); err == nil {
		t.Error("expected error frame without a store")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	b := New(nil)
	blob := []byte("snapshot payload")

	frame := readAndFree(t, b, b.Snapshot(blob))
	img, err := DecodeFrame(frame)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	frame = readAndFree(t, b, b.RestoreSnapshot(img))
	got, err := DecodeFrame(frame)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Errorf("restored %q, want %q", got, blob)
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	b := New(nil)
	frame := readAndFree(t, b, b.RestoreSnapshot([]byte{0xFF, 0x01}))
	if _, err := DecodeFrame(frame); err == nil {
		t.Error("expected error frame for garbage snapshot")
	}
}

func TestCapabilityStubsReturnErrorFrames(t *testing.T) {
	b := New(nil)
	handles := []Handle{
		b.Sha256([]byte("x")),
		b.HmacSha256([]byte("k"), []byte("x")),
		b.X25519(make([]byte, 32), make([]byte, 32)),
		b.ReadFile([]byte("/etc/hosts")),
	}
	for _, h := range handles {
		frame := readAndFree(t, b, h)
		_, err := DecodeFrame(frame)
		if err == nil {
			t.Fatal("capability stub returned success")
		}
		if !strings.Contains(err.Error(), "capability unavailable") {
			t.Errorf("unexpected message: %v", err)
		}
	}
}

func TestRandomBytesPlaceholder(t *testing.T) {
	b := New(nil)
	got := readAndFree(t, b, b.RandomBytes(4))
	if !bytes.Equal(got, []byte{0xA5, 0xA5, 0xA5, 0xA5}) {
		t.Errorf("placeholder pattern = %x", got)
	}
}
