package wire

// Shape messages (codes 301..311). Shape-add bodies carry geometry only;
// materials are applied separately with UpdateShapeMaterial.

type AddSphere struct {
	Shape  ShapeID
	Radius float32
}

func (m *AddSphere) Type() uint16 { return TypeAddSphere }
func (m *AddSphere) size() int    { return shapeIDSize + 4 }
func (m *AddSphere) append(w *writer) {
	w.shapeID(m.Shape)
	w.f32(m.Radius)
}
func (m *AddSphere) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Shape = r.shapeID()
	m.Radius = r.f32()
	return nil
}

type AddBox struct {
	Shape       ShapeID
	HalfExtents Vector
}

func (m *AddBox) Type() uint16 { return TypeAddBox }
func (m *AddBox) size() int    { return shapeIDSize + vectorSize }
func (m *AddBox) append(w *writer) {
	w.shapeID(m.Shape)
	w.vector(m.HalfExtents)
}
func (m *AddBox) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Shape = r.shapeID()
	m.HalfExtents = r.vector()
	return nil
}

// AddCapsule describes a capsule by radius and the height of its cylindrical
// segment, excluding the hemispherical caps.
type AddCapsule struct {
	Shape  ShapeID
	Radius float32
	Height float32
}

func (m *AddCapsule) Type() uint16 { return TypeAddCapsule }
func (m *AddCapsule) size() int    { return shapeIDSize + 8 }
func (m *AddCapsule) append(w *writer) {
	w.shapeID(m.Shape)
	w.f32(m.Radius)
	w.f32(m.Height)
}
func (m *AddCapsule) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Shape = r.shapeID()
	m.Radius = r.f32()
	m.Height = r.f32()
	return nil
}

type AddPlane struct {
	Shape    ShapeID
	Normal   Vector
	Distance float32
}

func (m *AddPlane) Type() uint16 { return TypeAddPlane }
func (m *AddPlane) size() int    { return shapeIDSize + vectorSize + 4 }
func (m *AddPlane) append(w *writer) {
	w.shapeID(m.Shape)
	w.vector(m.Normal)
	w.f32(m.Distance)
}
func (m *AddPlane) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Shape = r.shapeID()
	m.Normal = r.vector()
	m.Distance = r.f32()
	return nil
}

// AddConvexMesh uploads a convex hull as a point cloud. The body size is
// computed from the point count at encode time.
type AddConvexMesh struct {
	Shape  ShapeID
	Points []Vector
}

func (m *AddConvexMesh) Type() uint16 { return TypeAddConvexMesh }
func (m *AddConvexMesh) size() int    { return shapeIDSize + 4 + len(m.Points)*vectorSize }
func (m *AddConvexMesh) append(w *writer) {
	w.shapeID(m.Shape)
	w.u32(uint32(len(m.Points)))
	for _, p := range m.Points {
		w.vector(p)
	}
}
func (m *AddConvexMesh) decode(r *reader) error {
	if r.remaining() < shapeIDSize+4 {
		return ErrShortMessage
	}
	m.Shape = r.shapeID()
	count := int(r.u32())
	if r.remaining() < count*vectorSize {
		return ErrShortMessage
	}
	m.Points = make([]Vector, count)
	for i := range m.Points {
		m.Points[i] = r.vector()
	}
	return nil
}

// AddTriangleMesh uploads an arbitrary triangle soup: a point cloud plus
// three point indices per triangle. A trailing partial triangle is dropped
// on encode.
type AddTriangleMesh struct {
	Shape   ShapeID
	Points  []Vector
	Indices []uint32 // 3 per triangle
}

func (m *AddTriangleMesh) Type() uint16 { return TypeAddTriangleMesh }
func (m *AddTriangleMesh) size() int {
	triangles := len(m.Indices) / 3
	return shapeIDSize + 8 + len(m.Points)*vectorSize + triangles*3*4
}
func (m *AddTriangleMesh) append(w *writer) {
	triangles := len(m.Indices) / 3
	w.shapeID(m.Shape)
	w.u32(uint32(len(m.Points)))
	w.u32(uint32(triangles))
	for _, p := range m.Points {
		w.vector(p)
	}
	for _, ix := range m.Indices[:triangles*3] {
		w.u32(ix)
	}
}
func (m *AddTriangleMesh) decode(r *reader) error {
	if r.remaining() < shapeIDSize+8 {
		return ErrShortMessage
	}
	m.Shape = r.shapeID()
	points := int(r.u32())
	triangles := int(r.u32())
	if r.remaining() < points*vectorSize+triangles*3*4 {
		return ErrShortMessage
	}
	m.Points = make([]Vector, points)
	for i := range m.Points {
		m.Points[i] = r.vector()
	}
	m.Indices = make([]uint32, triangles*3)
	for i := range m.Indices {
		m.Indices[i] = r.u32()
	}
	return nil
}

// AddHeightField uploads a rows x columns grid of heights with the cell pitch
// along each axis.
type AddHeightField struct {
	Shape   ShapeID
	Rows    uint32
	Columns uint32
	CellX   float32
	CellY   float32
	Heights []float32 // len == Rows*Columns, row-major
}

func (m *AddHeightField) Type() uint16 { return TypeAddHeightField }
func (m *AddHeightField) size() int    { return shapeIDSize + 16 + len(m.Heights)*4 }
func (m *AddHeightField) append(w *writer) {
	w.shapeID(m.Shape)
	w.u32(m.Rows)
	w.u32(m.Columns)
	w.f32(m.CellX)
	w.f32(m.CellY)
	for _, h := range m.Heights {
		w.f32(h)
	}
}
func (m *AddHeightField) decode(r *reader) error {
	if r.remaining() < shapeIDSize+16 {
		return ErrShortMessage
	}
	m.Shape = r.shapeID()
	m.Rows = r.u32()
	m.Columns = r.u32()
	m.CellX = r.f32()
	m.CellY = r.f32()
	// The cell product of two hostile u32 counts can overflow int, so bound
	// it in uint64 against the body that actually arrived.
	cells := uint64(m.Rows) * uint64(m.Columns)
	if cells > uint64(r.remaining())/4 {
		return ErrShortMessage
	}
	m.Heights = make([]float32, cells)
	for i := range m.Heights {
		m.Heights[i] = r.f32()
	}
	return nil
}

type RemoveShape struct {
	Shape ShapeID
}

func (m *RemoveShape) Type() uint16     { return TypeRemoveShape }
func (m *RemoveShape) size() int        { return shapeIDSize }
func (m *RemoveShape) append(w *writer) { w.shapeID(m.Shape) }
func (m *RemoveShape) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Shape = r.shapeID()
	return nil
}

// AttachShape binds a shape to an actor at an actor-local pose. One shape may
// be attached to many actors.
type AttachShape struct {
	Actor            ActorID
	Shape            ShapeID
	LocalPosition    Vector
	LocalOrientation Quat
}

func (m *AttachShape) Type() uint16 { return TypeAttachShape }
func (m *AttachShape) size() int    { return actorIDSize + shapeIDSize + vectorSize + quatSize }
func (m *AttachShape) append(w *writer) {
	w.actorID(m.Actor)
	w.shapeID(m.Shape)
	w.vector(m.LocalPosition)
	w.quat(m.LocalOrientation)
}
func (m *AttachShape) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	m.Shape = r.shapeID()
	m.LocalPosition = r.vector()
	m.LocalOrientation = r.quat()
	return nil
}

type UpdateShapeMaterial struct {
	Shape    ShapeID
	Material Material
}

func (m *UpdateShapeMaterial) Type() uint16 { return TypeUpdateShapeMaterial }
func (m *UpdateShapeMaterial) size() int    { return shapeIDSize + materialSize }
func (m *UpdateShapeMaterial) append(w *writer) {
	w.shapeID(m.Shape)
	w.material(m.Material)
}
func (m *UpdateShapeMaterial) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Shape = r.shapeID()
	m.Material = r.material()
	return nil
}

type DetachShape struct {
	Actor ActorID
	Shape ShapeID
}

func (m *DetachShape) Type() uint16 { return TypeDetachShape }
func (m *DetachShape) size() int    { return actorIDSize + shapeIDSize }
func (m *DetachShape) append(w *writer) {
	w.actorID(m.Actor)
	w.shapeID(m.Shape)
}
func (m *DetachShape) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	m.Shape = r.shapeID()
	return nil
}
