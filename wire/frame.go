package wire

import "encoding/binary"

// FrameLen is the fixed wire size of every command sent to the device.
const FrameLen = 10

const (
	idxConst  = 0x00
	bohConst  = 0x0A
	lastConst = 0x00
)

// Payload is the 4-byte value field (frame offset 5-8) in one of three
// shapes the protocol uses depending on opcode. Exactly one Set* call
// must be made on a Builder before Build; which shape an opcode wants
// is documented alongside the hantek package operation that uses it.
type payload [4]byte

func payloadBytes(a, b, c, d byte) payload {
	return payload{a, b, c, d}
}

func payloadWords(w0, w1 uint16) payload {
	var p payload
	binary.LittleEndian.PutUint16(p[0:2], w0)
	binary.LittleEndian.PutUint16(p[2:4], w1)
	return p
}

func payloadU32(v uint32) payload {
	var p payload
	binary.LittleEndian.PutUint32(p[:], v)
	return p
}

// Builder assembles a 10-byte command Frame field by field. Every
// field must be set before Build; a field left unset is a programming
// error, and Build panics rather than silently emitting a zeroed
// frame.
type Builder struct {
	idxSet, bohSet, funcSet, cmdSet, valSet, lastSet bool

	idx, boh, cmd, last byte
	fn                  Func
	val                 payload
}

// NewBuilder returns a Builder with idx, boh and last pre-set to their
// fixed values for this device; callers only need to provide Func,
// Cmd and a payload variant.
func NewBuilder() *Builder {
	b := &Builder{}
	b.Idx(idxConst)
	b.Boh(bohConst)
	b.Last(lastConst)
	return b
}

// Idx sets the frame's idx field (normally left at its default via NewBuilder).
func (b *Builder) Idx(v byte) *Builder {
	b.idx = v
	b.idxSet = true
	return b
}

// Boh sets the frame's boh field (normally left at its default via NewBuilder).
func (b *Builder) Boh(v byte) *Builder {
	b.boh = v
	b.bohSet = true
	return b
}

// Func sets the 16-bit function group.
func (b *Builder) Func(f Func) *Builder {
	b.fn = f
	b.funcSet = true
	return b
}

// Cmd sets the 8-bit command selector.
func (b *Builder) Cmd(c Cmd) *Builder {
	b.cmd = byte(c)
	b.cmdSet = true
	return b
}

// SetBytes sets the payload as four independent bytes.
func (b *Builder) SetBytes(a, c, d, e byte) *Builder {
	b.val = payloadBytes(a, c, d, e)
	b.valSet = true
	return b
}

// SetVal0 is a convenience equal to SetBytes(v, 0, 0, 0), used by every
// opcode whose payload is a single significant byte.
func (b *Builder) SetVal0(v byte) *Builder {
	return b.SetBytes(v, 0, 0, 0)
}

// SetWords sets the payload as two little-endian 16-bit words.
func (b *Builder) SetWords(w0, w1 uint16) *Builder {
	b.val = payloadWords(w0, w1)
	b.valSet = true
	return b
}

// SetU32 sets the payload as one little-endian 32-bit word.
func (b *Builder) SetU32(v uint32) *Builder {
	b.val = payloadU32(v)
	b.valSet = true
	return b
}

// Last sets the frame's trailing byte (normally left at its default via NewBuilder).
func (b *Builder) Last(v byte) *Builder {
	b.last = v
	b.lastSet = true
	return b
}

// Build serializes the frame. Build panics if any field was never
// set: a half-built frame is a bug in the caller (always in package
// hantek), never a runtime condition a consumer of this library
// should have to recover from.
func (b *Builder) Build() [FrameLen]byte {
	if !(b.idxSet && b.bohSet && b.funcSet && b.cmdSet && b.valSet && b.lastSet) {
		panic("wire: Builder.Build called with an unset field")
	}
	var out [FrameLen]byte
	out[0] = b.idx
	out[1] = b.boh
	// func is serialized low byte first: offset 2 = low(func), offset 3 = high(func)
	out[2] = byte(b.fn & 0xFF)
	out[3] = byte(b.fn >> 8)
	out[4] = b.cmd
	copy(out[5:9], b.val[:])
	out[9] = b.last
	return out
}
