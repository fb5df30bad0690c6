package util

// Bitmap is a packed validity bitmap, one bit per logical row, that a
// caller of pkg/wireformat's export format can keep to signal NULLs out
// of band instead of a per-value NULL tag (ReadExport takes the row's
// validity as a bool). A nil/zero-length Bitmap means "everything
// valid" -- this lets an all-non-null export skip allocating a bitmap
// entirely.
type Bitmap struct {
	Bits []uint8
}

func EntryCount(cnt int) int {
	return (cnt + 7) / 8
}

func (bm *Bitmap) Data() []uint8 {
	return bm.Bits
}

func (bm *Bitmap) Bytes(count int) int {
	return EntryCount(count)
}

// Init allocates a fresh bitmap for count rows, all initially valid.
func (bm *Bitmap) Init(count int) {
	bm.Bits = make([]uint8, EntryCount(count))
	for i := range bm.Bits {
		bm.Bits[i] = 0xFF
	}
}

func (bm *Bitmap) Invalid() bool {
	return len(bm.Bits) == 0
}

// AllValid reports whether the bitmap carries no exceptions at all (the
// nil-bitmap shorthand).
func (bm *Bitmap) AllValid() bool {
	return bm.Invalid()
}

func getEntryIndex(idx uint64) (uint64, uint64) {
	return idx / 8, idx % 8
}

func (bm *Bitmap) RowIsValid(idx uint64) bool {
	if bm.Invalid() {
		return true
	}
	eIdx, pos := getEntryIndex(idx)
	return bm.Bits[eIdx]&(1<<pos) != 0
}

func (bm *Bitmap) SetValid(ridx uint64) {
	if bm.Invalid() {
		return
	}
	eIdx, pos := getEntryIndex(ridx)
	bm.Bits[eIdx] |= 1 << pos
}

func (bm *Bitmap) SetInvalid(ridx uint64, count int) {
	if bm.Invalid() {
		bm.Init(count)
	}
	eIdx, pos := getEntryIndex(ridx)
	bm.Bits[eIdx] &^= 1 << pos
}

func (bm *Bitmap) Set(ridx uint64, valid bool, count int) {
	if valid {
		bm.SetValid(ridx)
	} else {
		bm.SetInvalid(ridx, count)
	}
}

func (bm *Bitmap) Reset() {
	bm.Bits = nil
}
