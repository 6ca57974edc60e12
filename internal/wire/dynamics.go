package wire

// Dynamics and collision messages (codes 401..403).

// ActorsCollided reports a contact between two actors. Separation is the
// distance between the surfaces at the contact point; a negative value means
// the actors interpenetrate by that depth.
type ActorsCollided struct {
	ActorA        ActorID
	ActorB        ActorID
	ContactPoint  Vector
	ContactNormal Vector
	Separation    float32
}

func (m *ActorsCollided) Type() uint16 { return TypeActorsCollided }
func (m *ActorsCollided) size() int    { return 2*actorIDSize + 2*vectorSize + 4 }
func (m *ActorsCollided) append(w *writer) {
	w.actorID(m.ActorA)
	w.actorID(m.ActorB)
	w.vector(m.ContactPoint)
	w.vector(m.ContactNormal)
	w.f32(m.Separation)
}
func (m *ActorsCollided) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.ActorA = r.actorID()
	m.ActorB = r.actorID()
	m.ContactPoint = r.vector()
	m.ContactNormal = r.vector()
	m.Separation = r.f32()
	return nil
}

// ApplyForce applies a world-space force to a dynamic actor for one step.
type ApplyForce struct {
	Actor ActorID
	Force Vector
}

func (m *ApplyForce) Type() uint16 { return TypeApplyForce }
func (m *ApplyForce) size() int    { return actorIDSize + vectorSize }
func (m *ApplyForce) append(w *writer) {
	w.actorID(m.Actor)
	w.vector(m.Force)
}
func (m *ApplyForce) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	m.Force = r.vector()
	return nil
}

type ApplyTorque struct {
	Actor  ActorID
	Torque Vector
}

func (m *ApplyTorque) Type() uint16 { return TypeApplyTorque }
func (m *ApplyTorque) size() int    { return actorIDSize + vectorSize }
func (m *ApplyTorque) append(w *writer) {
	w.actorID(m.Actor)
	w.vector(m.Torque)
}
func (m *ApplyTorque) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	m.Torque = r.vector()
	return nil
}
