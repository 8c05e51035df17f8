package bitio

// MaxLeb128Size is the largest number of bytes a ULEB128 or SLEB128 value may
// occupy in an IAMF bitstream.
const MaxLeb128Size = 8

// MaxStringSize bounds a null-terminated string field, including the
// terminator.
const MaxStringSize = 128

// GeneratorMode selects how a Writer emits LEB128 values.
type GeneratorMode uint8

const (
	// Minimum emits the fewest bytes that can hold the value.
	Minimum GeneratorMode = iota
	// FixedSize always emits exactly Size bytes, forcing continuation bits
	// on every byte but the last even when the value would fit in fewer.
	FixedSize
)

// LebGenerator configures how a Writer encodes Uleb128/Sleb128 values. The
// zero value is Minimum mode.
type LebGenerator struct {
	Mode GeneratorMode
	Size int // only meaningful when Mode == FixedSize, in [1, MaxLeb128Size]
}

// NewMinimumGenerator returns the canonical, fewest-bytes generator.
func NewMinimumGenerator() LebGenerator {
	return LebGenerator{Mode: Minimum}
}

// NewFixedSizeGenerator returns a generator that always emits exactly size
// bytes, size in [1, MaxLeb128Size].
func NewFixedSizeGenerator(size int) LebGenerator {
	return LebGenerator{Mode: FixedSize, Size: size}
}
