package rpatype

// MaxNameLength is the longest entry name the index can store.
const MaxNameLength = 1<<16 - 1

// Entry locates one named payload within an archive body.
type Entry struct {
	// Name is the entry's unique identifier (e.g., "images/bg.png").
	// Names are compared byte-exact.
	Name string

	// Offset is the byte offset in the body where the payload begins.
	Offset uint64

	// Length is the payload size in bytes.
	Length uint64
}

// End returns the offset one past the last payload byte.
func (e Entry) End() uint64 {
	return e.Offset + e.Length
}
