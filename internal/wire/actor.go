package wire

// Actor lifecycle and per-actor property messages (codes 101..114).

// SetWorld configures scene-wide parameters before actors are created.
type SetWorld struct {
	SimID   uint32
	Gravity Vector
}

func (m *SetWorld) Type() uint16 { return TypeSetWorld }
func (m *SetWorld) size() int    { return 4 + vectorSize }
func (m *SetWorld) append(w *writer) {
	w.u32(m.SimID)
	w.vector(m.Gravity)
}
func (m *SetWorld) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.SimID = r.u32()
	m.Gravity = r.vector()
	return nil
}

type CreateStaticActor struct {
	Actor       ActorID
	Position    Vector
	Orientation Quat
}

func (m *CreateStaticActor) Type() uint16 { return TypeCreateStaticActor }
func (m *CreateStaticActor) size() int    { return actorIDSize + vectorSize + quatSize }
func (m *CreateStaticActor) append(w *writer) {
	w.actorID(m.Actor)
	w.vector(m.Position)
	w.quat(m.Orientation)
}
func (m *CreateStaticActor) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	m.Position = r.vector()
	m.Orientation = r.quat()
	return nil
}

type CreateDynamicActor struct {
	Actor           ActorID
	Position        Vector
	Orientation     Quat
	LinearVelocity  Vector
	AngularVelocity Vector
	Mass            float32
}

func (m *CreateDynamicActor) Type() uint16 { return TypeCreateDynamicActor }
func (m *CreateDynamicActor) size() int {
	return actorIDSize + vectorSize + quatSize + 2*vectorSize + 4
}
func (m *CreateDynamicActor) append(w *writer) {
	w.actorID(m.Actor)
	w.vector(m.Position)
	w.quat(m.Orientation)
	w.vector(m.LinearVelocity)
	w.vector(m.AngularVelocity)
	w.f32(m.Mass)
}
func (m *CreateDynamicActor) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	m.Position = r.vector()
	m.Orientation = r.quat()
	m.LinearVelocity = r.vector()
	m.AngularVelocity = r.vector()
	m.Mass = r.f32()
	return nil
}

// SetStaticActor is the engine's authoritative pose report for a static
// actor, typically after a teleport-style correction.
type SetStaticActor struct {
	Actor       ActorID
	Position    Vector
	Orientation Quat
}

func (m *SetStaticActor) Type() uint16 { return TypeSetStaticActor }
func (m *SetStaticActor) size() int    { return actorIDSize + vectorSize + quatSize }
func (m *SetStaticActor) append(w *writer) {
	w.actorID(m.Actor)
	w.vector(m.Position)
	w.quat(m.Orientation)
}
func (m *SetStaticActor) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	m.Position = r.vector()
	m.Orientation = r.quat()
	return nil
}

// SetDynamicActor is the engine's per-step state report for a dynamic actor.
// It arrives at high frequency on the best-effort channel.
type SetDynamicActor struct {
	Actor           ActorID
	Position        Vector
	Orientation     Quat
	LinearVelocity  Vector
	AngularVelocity Vector
}

func (m *SetDynamicActor) Type() uint16 { return TypeSetDynamicActor }
func (m *SetDynamicActor) size() int {
	return actorIDSize + vectorSize + quatSize + 2*vectorSize
}
func (m *SetDynamicActor) append(w *writer) {
	w.actorID(m.Actor)
	w.vector(m.Position)
	w.quat(m.Orientation)
	w.vector(m.LinearVelocity)
	w.vector(m.AngularVelocity)
}
func (m *SetDynamicActor) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	m.Position = r.vector()
	m.Orientation = r.quat()
	m.LinearVelocity = r.vector()
	m.AngularVelocity = r.vector()
	return nil
}

type UpdateActorPosition struct {
	Actor    ActorID
	Position Vector
}

func (m *UpdateActorPosition) Type() uint16 { return TypeUpdateActorPosition }
func (m *UpdateActorPosition) size() int    { return actorIDSize + vectorSize }
func (m *UpdateActorPosition) append(w *writer) {
	w.actorID(m.Actor)
	w.vector(m.Position)
}
func (m *UpdateActorPosition) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	m.Position = r.vector()
	return nil
}

type UpdateActorOrientation struct {
	Actor       ActorID
	Orientation Quat
}

func (m *UpdateActorOrientation) Type() uint16 { return TypeUpdateActorOrientation }
func (m *UpdateActorOrientation) size() int    { return actorIDSize + quatSize }
func (m *UpdateActorOrientation) append(w *writer) {
	w.actorID(m.Actor)
	w.quat(m.Orientation)
}
func (m *UpdateActorOrientation) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	m.Orientation = r.quat()
	return nil
}

// UpdateActorGravityModifier scales world gravity per actor; 1.0 is normal
// weight, 0 disables gravity for the actor.
type UpdateActorGravityModifier struct {
	Actor    ActorID
	Modifier float32
}

func (m *UpdateActorGravityModifier) Type() uint16 { return TypeUpdateActorGravityModifier }
func (m *UpdateActorGravityModifier) size() int    { return actorIDSize + 4 }
func (m *UpdateActorGravityModifier) append(w *writer) {
	w.actorID(m.Actor)
	w.f32(m.Modifier)
}
func (m *UpdateActorGravityModifier) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	m.Modifier = r.f32()
	return nil
}

type UpdateActorLinearVelocity struct {
	Actor    ActorID
	Velocity Vector
}

func (m *UpdateActorLinearVelocity) Type() uint16 { return TypeUpdateActorLinearVelocity }
func (m *UpdateActorLinearVelocity) size() int    { return actorIDSize + vectorSize }
func (m *UpdateActorLinearVelocity) append(w *writer) {
	w.actorID(m.Actor)
	w.vector(m.Velocity)
}
func (m *UpdateActorLinearVelocity) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	m.Velocity = r.vector()
	return nil
}

type UpdateActorAngularVelocity struct {
	Actor    ActorID
	Velocity Vector
}

func (m *UpdateActorAngularVelocity) Type() uint16 { return TypeUpdateActorAngularVelocity }
func (m *UpdateActorAngularVelocity) size() int    { return actorIDSize + vectorSize }
func (m *UpdateActorAngularVelocity) append(w *writer) {
	w.actorID(m.Actor)
	w.vector(m.Velocity)
}
func (m *UpdateActorAngularVelocity) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	m.Velocity = r.vector()
	return nil
}

type UpdateActorMass struct {
	Actor ActorID
	Mass  float32
}

func (m *UpdateActorMass) Type() uint16 { return TypeUpdateActorMass }
func (m *UpdateActorMass) size() int    { return actorIDSize + 4 }
func (m *UpdateActorMass) append(w *writer) {
	w.actorID(m.Actor)
	w.f32(m.Mass)
}
func (m *UpdateActorMass) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	m.Mass = r.f32()
	return nil
}

// GetActorMass requests a DynamicActorUpdateMass report for the actor.
type GetActorMass struct {
	Actor ActorID
}

func (m *GetActorMass) Type() uint16     { return TypeGetActorMass }
func (m *GetActorMass) size() int        { return actorIDSize }
func (m *GetActorMass) append(w *writer) { w.actorID(m.Actor) }
func (m *GetActorMass) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	return nil
}

type RemoveActor struct {
	Actor ActorID
}

func (m *RemoveActor) Type() uint16     { return TypeRemoveActor }
func (m *RemoveActor) size() int        { return actorIDSize }
func (m *RemoveActor) append(w *writer) { w.actorID(m.Actor) }
func (m *RemoveActor) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	return nil
}

// DynamicActorUpdateMass answers GetActorMass with the engine-computed mass
// (the engine recomputes it when shapes attach or densities change).
type DynamicActorUpdateMass struct {
	Actor ActorID
	Mass  float32
}

func (m *DynamicActorUpdateMass) Type() uint16 { return TypeDynamicActorUpdateMass }
func (m *DynamicActorUpdateMass) size() int    { return actorIDSize + 4 }
func (m *DynamicActorUpdateMass) append(w *writer) {
	w.actorID(m.Actor)
	w.f32(m.Mass)
}
func (m *DynamicActorUpdateMass) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.Actor = r.actorID()
	m.Mass = r.f32()
	return nil
}
