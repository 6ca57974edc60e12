package wire

import (
	"encoding/binary"
	"math"
)

// Sub-records shared across the catalog. All identifiers carry the owning
// simulation's id so one engine can serve several scenes.

type ActorID struct {
	SimID   uint32
	ActorID uint32
}

type ShapeID struct {
	SimID   uint32
	ShapeID uint32
}

type JointID struct {
	SimID   uint32
	JointID uint32
}

type Vector struct {
	X, Y, Z float32
}

type Quat struct {
	X, Y, Z, W float32
}

type Material struct {
	Density         float32
	StaticFriction  float32
	KineticFriction float32
	Restitution     float32
}

const (
	actorIDSize  = 8
	shapeIDSize  = 8
	jointIDSize  = 8
	vectorSize   = 12
	quatSize     = 16
	materialSize = 16

	// NameFieldSize is the fixed width of the simulation name field in Logon.
	// Longer names are truncated; there is no length prefix and no terminator.
	NameFieldSize = 48
)

// writer appends big-endian fields to a growing buffer. It is the single
// integer/float byte-order conversion point for the whole codec.
type writer struct {
	buf []byte
}

func (w *writer) u32(v uint32) { w.buf = binary.BigEndian.AppendUint32(w.buf, v) }
func (w *writer) f32(v float32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, math.Float32bits(v))
}

func (w *writer) actorID(v ActorID) { w.u32(v.SimID); w.u32(v.ActorID) }
func (w *writer) shapeID(v ShapeID) { w.u32(v.SimID); w.u32(v.ShapeID) }
func (w *writer) jointID(v JointID) { w.u32(v.SimID); w.u32(v.JointID) }
func (w *writer) vector(v Vector)   { w.f32(v.X); w.f32(v.Y); w.f32(v.Z) }
func (w *writer) quat(v Quat)       { w.f32(v.X); w.f32(v.Y); w.f32(v.Z); w.f32(v.W) }
func (w *writer) material(v Material) {
	w.f32(v.Density)
	w.f32(v.StaticFriction)
	w.f32(v.KineticFriction)
	w.f32(v.Restitution)
}

// name48 writes s into a fixed NameFieldSize-byte field, truncating when
// longer and zero-filling the remainder.
func (w *writer) name48(s string) {
	var field [NameFieldSize]byte
	copy(field[:], s)
	w.buf = append(w.buf, field[:]...)
}

// reader consumes big-endian fields from a body whose size has already been
// validated against the message's minimum; fixed-field reads cannot run
// short. Variable-length tails re-check remaining() before reading.
type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int { return len(r.buf) - r.off }

func (r *reader) u32() uint32 {
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *reader) f32() float32 {
	return math.Float32frombits(r.u32())
}

func (r *reader) actorID() ActorID { return ActorID{SimID: r.u32(), ActorID: r.u32()} }
func (r *reader) shapeID() ShapeID { return ShapeID{SimID: r.u32(), ShapeID: r.u32()} }
func (r *reader) jointID() JointID { return JointID{SimID: r.u32(), JointID: r.u32()} }
func (r *reader) vector() Vector   { return Vector{X: r.f32(), Y: r.f32(), Z: r.f32()} }
func (r *reader) quat() Quat       { return Quat{X: r.f32(), Y: r.f32(), Z: r.f32(), W: r.f32()} }
func (r *reader) material() Material {
	return Material{
		Density:         r.f32(),
		StaticFriction:  r.f32(),
		KineticFriction: r.f32(),
		Restitution:     r.f32(),
	}
}

// name48 reads the fixed name field and trims trailing NULs.
func (r *reader) name48() string {
	field := r.buf[r.off : r.off+NameFieldSize]
	r.off += NameFieldSize
	end := len(field)
	for end > 0 && field[end-1] == 0 {
		end--
	}
	return string(field[:end])
}
