package rt

import "testing"

func restoreDefaultTuning(t *testing.T) {
	t.Cleanup(func() {
		Tune(DefaultArrayCapacity, DefaultBytesCapacity, DefaultStringCapacity, DefaultReleaseStack)
	})
}

func TestTuneGrowsBytesToConfiguredMinimum(t *testing.T) {
	restoreDefaultTuning(t)
	Tune(DefaultArrayCapacity, 32, DefaultStringCapacity, DefaultReleaseStack)

	b := AllocBytes(0, 0)
	b = BytesPush(b, 1)
	if got := cap(BytesData(b)); got != 32 {
		t.Errorf("grown buffer capacity = %d, want configured minimum 32", got)
	}
	Release(b)
}

func TestTuneGrowsArrayToConfiguredMinimum(t *testing.T) {
	restoreDefaultTuning(t)
	Tune(6, DefaultBytesCapacity, DefaultStringCapacity, DefaultReleaseStack)

	a := AllocArray(0, 0)
	a = ArrayPush(a, Box(1))
	if got := cap(ArrayElems(a)); got != 6 {
		t.Errorf("grown array capacity = %d, want configured minimum 6", got)
	}
	Release(a)
}

func TestTuneGrowsStringToConfiguredMinimum(t *testing.T) {
	restoreDefaultTuning(t)
	Tune(DefaultArrayCapacity, DefaultBytesCapacity, 24, DefaultReleaseStack)

	s := MkString("")
	s = StringPush(s, 'a')
	if got := cap(StringData(s)); got != 24 {
		t.Errorf("grown string capacity = %d, want configured minimum 24", got)
	}
	Release(s)
}

func TestTuneRejectsNonPositive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero capacity")
		}
	}()
	Tune(0, DefaultBytesCapacity, DefaultStringCapacity, DefaultReleaseStack)
}
