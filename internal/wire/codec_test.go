package wire

import (
	"encoding/binary"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func encodeForTest(t *testing.T, b Body) []byte {
	t.Helper()
	return Encode(Header{Version: ProtocolVersion, Index: 42, Timestamp: 1.5}, b)
}

func TestRoundTrip_AllTypes(t *testing.T) {
	actor := ActorID{SimID: 3, ActorID: 9}
	shape := ShapeID{SimID: 3, ShapeID: 17}
	joint := JointID{SimID: 3, JointID: 5}
	v := Vector{X: 1, Y: -2.5, Z: 3.25}
	q := Quat{X: 0, Y: 0.5, Z: 0, W: 0.75}
	mat := Material{Density: 1000, StaticFriction: 0.5, KineticFriction: 0.4, Restitution: 0.1}

	msgs := []Body{
		&EngineError{RefIndex: 31, Reason: "actor 9 unknown"},
		&Logon{SimID: 7, Name: "TestSim"},
		&LogonReady{SimID: 7},
		&Logoff{SimID: 7},
		&AdvanceTime{SimID: 7, Step: 0.0625},
		&TimeAdvanced{SimID: 7, SimTime: 12.5},
		&SetWorld{SimID: 7, Gravity: Vector{Z: -9.81}},
		&CreateStaticActor{Actor: actor, Position: v, Orientation: q},
		&CreateDynamicActor{Actor: actor, Position: v, Orientation: q, LinearVelocity: v, AngularVelocity: v, Mass: 70},
		&SetStaticActor{Actor: actor, Position: v, Orientation: q},
		&SetDynamicActor{Actor: actor, Position: v, Orientation: q, LinearVelocity: v, AngularVelocity: v},
		&UpdateActorPosition{Actor: actor, Position: v},
		&UpdateActorOrientation{Actor: actor, Orientation: q},
		&UpdateActorGravityModifier{Actor: actor, Modifier: 0.5},
		&UpdateActorLinearVelocity{Actor: actor, Velocity: v},
		&UpdateActorAngularVelocity{Actor: actor, Velocity: v},
		&UpdateActorMass{Actor: actor, Mass: 12},
		&GetActorMass{Actor: actor},
		&RemoveActor{Actor: actor},
		&DynamicActorUpdateMass{Actor: actor, Mass: 12.5},
		&AddJoint{Joint: joint, ActorA: actor, ActorB: ActorID{SimID: 3, ActorID: 10}, Anchor: v, Axis: Vector{Z: 1}},
		&RemoveJoint{Joint: joint},
		&AddSphere{Shape: shape, Radius: 0.25},
		&AddBox{Shape: shape, HalfExtents: v},
		&AddCapsule{Shape: shape, Radius: 0.2, Height: 1.1},
		&AddPlane{Shape: shape, Normal: Vector{Z: 1}, Distance: 0},
		&AddConvexMesh{Shape: shape, Points: []Vector{{1, 2, 3}, {4, 5, 6}}},
		&AddTriangleMesh{Shape: shape, Points: []Vector{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, Indices: []uint32{0, 1, 2}},
		&AddHeightField{Shape: shape, Rows: 2, Columns: 3, CellX: 1, CellY: 1, Heights: []float32{0, 1, 2, 3, 4, 5}},
		&RemoveShape{Shape: shape},
		&AttachShape{Actor: actor, Shape: shape, LocalPosition: v, LocalOrientation: q},
		&UpdateShapeMaterial{Shape: shape, Material: mat},
		&DetachShape{Actor: actor, Shape: shape},
		&ActorsCollided{ActorA: actor, ActorB: ActorID{SimID: 3, ActorID: 10}, ContactPoint: v, ContactNormal: Vector{Z: 1}, Separation: -0.01},
		&ApplyForce{Actor: actor, Force: v},
		&ApplyTorque{Actor: actor, Torque: v},
	}

	for _, in := range msgs {
		buf := encodeForTest(t, in)
		h, out, err := Decode(buf)
		if err != nil {
			t.Fatalf("type %d: decode: %v", in.Type(), err)
		}
		if h.Type != in.Type() {
			t.Fatalf("type %d: header type=%d", in.Type(), h.Type)
		}
		if int(h.Length) != len(buf) {
			t.Fatalf("type %d: length=%d buf=%d", in.Type(), h.Length, len(buf))
		}
		if int(h.Length) != HeaderSize+in.size() {
			t.Fatalf("type %d: length=%d want header+body=%d", in.Type(), h.Length, HeaderSize+in.size())
		}
		if !reflect.DeepEqual(in, out) {
			t.Fatalf("type %d: round trip mismatch:\n in=%+v\nout=%+v", in.Type(), in, out)
		}
	}
}

func TestLengthInvariant_VariableBodies(t *testing.T) {
	shape := ShapeID{SimID: 1, ShapeID: 2}

	for _, n := range []int{0, 1, 7} {
		points := make([]Vector, n)
		buf := encodeForTest(t, &AddConvexMesh{Shape: shape, Points: points})
		want := HeaderSize + 8 + 4 + n*12
		if len(buf) != want {
			t.Fatalf("convex n=%d: len=%d want=%d", n, len(buf), want)
		}
		if got := binary.BigEndian.Uint32(buf[LengthOffset:]); int(got) != want {
			t.Fatalf("convex n=%d: header length=%d want=%d", n, got, want)
		}
	}

	for _, rc := range [][2]uint32{{0, 0}, {1, 1}, {3, 4}} {
		rows, cols := rc[0], rc[1]
		hf := &AddHeightField{Shape: shape, Rows: rows, Columns: cols, Heights: make([]float32, rows*cols)}
		buf := encodeForTest(t, hf)
		want := HeaderSize + 8 + 16 + int(rows*cols)*4
		if len(buf) != want {
			t.Fatalf("heightfield %dx%d: len=%d want=%d", rows, cols, len(buf), want)
		}
	}
}

func TestEncode_FloatIsBigEndian(t *testing.T) {
	// IEEE-754 single for 1.0 is 0x3F800000; big-endian puts 0x3F first.
	buf := encodeForTest(t, &AdvanceTime{SimID: 0, Step: 1.0})
	field := buf[HeaderSize+4 : HeaderSize+8]
	want := []byte{0x3f, 0x80, 0x00, 0x00}
	if !reflect.DeepEqual(field, want) {
		t.Fatalf("step bytes=% x want=% x", field, want)
	}

	// And back: decoding must reproduce the value bit-exactly.
	_, body, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := body.(*AdvanceTime).Step; got != 1.0 {
		t.Fatalf("step=%v", got)
	}
}

func TestDecode_VersionMismatchDropped(t *testing.T) {
	buf := encodeForTest(t, &LogonReady{SimID: 1})
	binary.BigEndian.PutUint16(buf[0:], ProtocolVersion+1)

	_, _, err := Decode(buf)
	if !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("err=%v", err)
	}
}

func TestDecode_ShortBodyDropped(t *testing.T) {
	buf := encodeForTest(t, &CreateStaticActor{Actor: ActorID{1, 2}})

	// Truncate the body but keep the header intact and fix up Length so the
	// failure is the body check, not the frame check.
	cut := buf[:HeaderSize+4]
	binary.BigEndian.PutUint32(cut[LengthOffset:], uint32(len(cut)))
	if _, _, err := Decode(cut); !errors.Is(err, ErrShortMessage) {
		t.Fatalf("err=%v", err)
	}

	// Shorter than a header at all.
	if _, _, err := Decode(buf[:10]); !errors.Is(err, ErrShortMessage) {
		t.Fatalf("err=%v", err)
	}
}

func TestDecode_MeshCountLyingAboutSize(t *testing.T) {
	buf := encodeForTest(t, &AddConvexMesh{Shape: ShapeID{1, 2}, Points: []Vector{{1, 2, 3}}})
	// Claim 1000 points while carrying one.
	binary.BigEndian.PutUint32(buf[HeaderSize+8:], 1000)
	if _, _, err := Decode(buf); !errors.Is(err, ErrShortMessage) {
		t.Fatalf("err=%v", err)
	}
}

func TestDecode_HeightFieldCountOverflow(t *testing.T) {
	buf := encodeForTest(t, &AddHeightField{
		Shape: ShapeID{SimID: 1, ShapeID: 2},
		Rows:  1, Columns: 1,
		Heights: []float32{0},
	})
	// Claim 2^32-1 rows and columns in a body carrying one cell. The cell
	// product overflows int; decode must reject it, not allocate or panic.
	binary.BigEndian.PutUint32(buf[HeaderSize+8:], 0xFFFFFFFF)
	binary.BigEndian.PutUint32(buf[HeaderSize+12:], 0xFFFFFFFF)
	if _, _, err := Decode(buf); !errors.Is(err, ErrShortMessage) {
		t.Fatalf("err=%v", err)
	}

	// Counts whose product is positive but still absurd fail the same way.
	binary.BigEndian.PutUint32(buf[HeaderSize+8:], 1<<16)
	binary.BigEndian.PutUint32(buf[HeaderSize+12:], 1<<16)
	if _, _, err := Decode(buf); !errors.Is(err, ErrShortMessage) {
		t.Fatalf("err=%v", err)
	}
}

func TestTriangleMesh_PartialTriangleDropped(t *testing.T) {
	in := &AddTriangleMesh{
		Shape:   ShapeID{SimID: 1, ShapeID: 2},
		Points:  []Vector{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
		Indices: []uint32{0, 1, 2, 0, 1},
	}
	buf := encodeForTest(t, in)

	// The emitted count, the index payload, and the declared length must
	// agree: one whole triangle, the dangling pair dropped.
	h, body, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if int(h.Length) != len(buf) {
		t.Fatalf("length=%d buf=%d", h.Length, len(buf))
	}
	out := body.(*AddTriangleMesh)
	if len(out.Indices) != 3 {
		t.Fatalf("indices=%v", out.Indices)
	}
	if got := binary.BigEndian.Uint32(buf[HeaderSize+12:]); got != 1 {
		t.Fatalf("triangle count=%d", got)
	}
}

func TestLogon_NameTruncatedTo48(t *testing.T) {
	long := strings.Repeat("x", 60)
	buf := encodeForTest(t, &Logon{SimID: 1, Name: long})
	if len(buf) != HeaderSize+4+NameFieldSize {
		t.Fatalf("len=%d", len(buf))
	}
	_, body, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := body.(*Logon).Name; got != long[:NameFieldSize] {
		t.Fatalf("name=%q (%d bytes)", got, len(got))
	}
}

func TestScenarioLogon(t *testing.T) {
	buf := encodeForTest(t, &Logon{SimID: 7, Name: "TestSim"})
	if len(buf) != 24+4+48 {
		t.Fatalf("len=%d want=%d", len(buf), 24+4+48)
	}
	if got := binary.BigEndian.Uint16(buf[2:]); got != 11 {
		t.Fatalf("msgType=%d", got)
	}
	if got := binary.BigEndian.Uint32(buf[HeaderSize:]); got != 7 {
		t.Fatalf("simID=%d", got)
	}
	if got := string(buf[HeaderSize+4 : HeaderSize+4+7]); got != "TestSim" {
		t.Fatalf("name bytes=%q", got)
	}
}

func TestScenarioConvexMesh(t *testing.T) {
	buf := encodeForTest(t, &AddConvexMesh{
		Shape:  ShapeID{SimID: 0, ShapeID: 5},
		Points: []Vector{{1, 2, 3}, {4, 5, 6}},
	})
	if got := binary.BigEndian.Uint32(buf[LengthOffset:]); got != 60 {
		t.Fatalf("header length=%d want=60", got)
	}
	if len(buf) != 60 {
		t.Fatalf("len=%d want=60", len(buf))
	}
}

func TestDecode_UnknownTypeReported(t *testing.T) {
	buf := encodeForTest(t, &LogonReady{SimID: 1})
	binary.BigEndian.PutUint16(buf[2:], 9999)
	_, _, err := Decode(buf)
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err=%v", err)
	}
}

func TestEngineError_ReasonFillsBody(t *testing.T) {
	in := &EngineError{RefIndex: 123, Reason: "mesh rejected"}
	buf := encodeForTest(t, in)
	if len(buf) != HeaderSize+4+len(in.Reason) {
		t.Fatalf("len=%d", len(buf))
	}
	_, body, err := Decode(buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out := body.(*EngineError)
	if out.RefIndex != 123 || out.Reason != "mesh rejected" {
		t.Fatalf("out=%+v", out)
	}
}
