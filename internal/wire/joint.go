package wire

// Joint messages (codes 201..202).

// AddJoint constrains two actors around a shared anchor and axis, both given
// in world coordinates at creation time.
type AddJoint struct {
	Joint  JointID
	ActorA ActorID
	ActorB ActorID
	Anchor Vector
	Axis   Vector
}

func (m *AddJoint) Type() uint16 { return TypeAddJoint }
func (m *AddJoint) size() int    { return jointIDSize + 2*actorIDSize + 2*vectorSize }
func (m *AddJoint) append(w *writer) {
	w.jointID(m.Joint)
	w.actorID(m.ActorA)
	w.actorID(m.ActorB)
	w.vector(m.Anchor)
	w.vector(m.Axis)
}
func (m *AddJoint) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Joint = r.jointID()
	m.ActorA = r.actorID()
	m.ActorB = r.actorID()
	m.Anchor = r.vector()
	m.Axis = r.vector()
	return nil
}

type RemoveJoint struct {
	Joint JointID
}

func (m *RemoveJoint) Type() uint16     { return TypeRemoveJoint }
func (m *RemoveJoint) size() int        { return jointIDSize }
func (m *RemoveJoint) append(w *writer) { w.jointID(m.Joint) }
func (m *RemoveJoint) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Joint = r.jointID()
	return nil
}
