package rt

// Canonical empty containers. Constructed once at process start, marked
// immortal, and handed out wherever an operation yields an empty result.
// They never enter the release path and require no teardown.
var (
	EmptyArray  *Object
	EmptyBytes  *Object
	EmptyString *Object
)

func init() {
	EmptyArray = AllocArray(0, 0).Obj()
	MarkImmortal(EmptyArray)

	EmptyBytes = AllocBytes(0, 0).Obj()
	MarkImmortal(EmptyBytes)

	EmptyString = MkString("").Obj()
	MarkImmortal(EmptyString)
}
