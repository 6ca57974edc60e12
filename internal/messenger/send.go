package messenger

import "github.com/Virtual-Universe/Virtual-Universe-Early-Dev-sub000/internal/wire"

// One method per protocol command. Routing follows the traffic shape:
// structural changes and anything the engine must not miss go reliable,
// high-frequency pose and force updates go best-effort, and the session
// boundary messages go on both channels.

func (m *Messenger) sim() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.simID
}

// Session control.

func (m *Messenger) SendLogon(name string) {
	m.post(routeBoth, &wire.Logon{SimID: m.sim(), Name: name})
}

func (m *Messenger) SendLogoff() {
	m.post(routeBoth, &wire.Logoff{SimID: m.sim()})
}

func (m *Messenger) SendAdvanceTime(step float32) {
	m.post(routeReliable, &wire.AdvanceTime{SimID: m.sim(), Step: step})
}

// World and actor lifecycle.

func (m *Messenger) SendSetWorld(gravity wire.Vector) {
	m.post(routeReliable, &wire.SetWorld{SimID: m.sim(), Gravity: gravity})
}

func (m *Messenger) SendCreateStaticActor(actor wire.ActorID, pos wire.Vector, orient wire.Quat) {
	m.post(routeReliable, &wire.CreateStaticActor{Actor: actor, Position: pos, Orientation: orient})
}

func (m *Messenger) SendCreateDynamicActor(actor wire.ActorID, pos wire.Vector, orient wire.Quat, linear, angular wire.Vector, mass float32) {
	m.post(routeReliable, &wire.CreateDynamicActor{
		Actor:           actor,
		Position:        pos,
		Orientation:     orient,
		LinearVelocity:  linear,
		AngularVelocity: angular,
		Mass:            mass,
	})
}

func (m *Messenger) SendRemoveActor(actor wire.ActorID) {
	m.post(routeReliable, &wire.RemoveActor{Actor: actor})
}

// Per-actor property updates. Pose and velocity are superseded by the next
// report anyway, so they ride the lossy channel.

func (m *Messenger) SendUpdateActorPosition(actor wire.ActorID, pos wire.Vector) {
	m.post(routeBestEffort, &wire.UpdateActorPosition{Actor: actor, Position: pos})
}

func (m *Messenger) SendUpdateActorOrientation(actor wire.ActorID, orient wire.Quat) {
	m.post(routeBestEffort, &wire.UpdateActorOrientation{Actor: actor, Orientation: orient})
}

func (m *Messenger) SendUpdateActorLinearVelocity(actor wire.ActorID, v wire.Vector) {
	m.post(routeBestEffort, &wire.UpdateActorLinearVelocity{Actor: actor, Velocity: v})
}

func (m *Messenger) SendUpdateActorAngularVelocity(actor wire.ActorID, v wire.Vector) {
	m.post(routeBestEffort, &wire.UpdateActorAngularVelocity{Actor: actor, Velocity: v})
}

func (m *Messenger) SendUpdateActorGravityModifier(actor wire.ActorID, modifier float32) {
	m.post(routeReliable, &wire.UpdateActorGravityModifier{Actor: actor, Modifier: modifier})
}

func (m *Messenger) SendUpdateActorMass(actor wire.ActorID, mass float32) {
	m.post(routeReliable, &wire.UpdateActorMass{Actor: actor, Mass: mass})
}

func (m *Messenger) SendGetActorMass(actor wire.ActorID) {
	m.post(routeReliable, &wire.GetActorMass{Actor: actor})
}

// Joints.

func (m *Messenger) SendAddJoint(joint wire.JointID, a, b wire.ActorID, anchor, axis wire.Vector) {
	m.post(routeReliable, &wire.AddJoint{Joint: joint, ActorA: a, ActorB: b, Anchor: anchor, Axis: axis})
}

func (m *Messenger) SendRemoveJoint(joint wire.JointID) {
	m.post(routeReliable, &wire.RemoveJoint{Joint: joint})
}

// Shapes.

func (m *Messenger) SendAddSphere(shape wire.ShapeID, radius float32) {
	m.post(routeReliable, &wire.AddSphere{Shape: shape, Radius: radius})
}

func (m *Messenger) SendAddBox(shape wire.ShapeID, halfExtents wire.Vector) {
	m.post(routeReliable, &wire.AddBox{Shape: shape, HalfExtents: halfExtents})
}

func (m *Messenger) SendAddCapsule(shape wire.ShapeID, radius, height float32) {
	m.post(routeReliable, &wire.AddCapsule{Shape: shape, Radius: radius, Height: height})
}

func (m *Messenger) SendAddPlane(shape wire.ShapeID, normal wire.Vector, distance float32) {
	m.post(routeReliable, &wire.AddPlane{Shape: shape, Normal: normal, Distance: distance})
}

func (m *Messenger) SendAddConvexMesh(shape wire.ShapeID, points []wire.Vector) {
	m.post(routeReliable, &wire.AddConvexMesh{Shape: shape, Points: points})
}

func (m *Messenger) SendAddTriangleMesh(shape wire.ShapeID, points []wire.Vector, indices []uint32) {
	m.post(routeReliable, &wire.AddTriangleMesh{Shape: shape, Points: points, Indices: indices})
}

func (m *Messenger) SendAddHeightField(shape wire.ShapeID, rows, columns uint32, cellX, cellY float32, heights []float32) {
	m.post(routeReliable, &wire.AddHeightField{
		Shape:   shape,
		Rows:    rows,
		Columns: columns,
		CellX:   cellX,
		CellY:   cellY,
		Heights: heights,
	})
}

func (m *Messenger) SendRemoveShape(shape wire.ShapeID) {
	m.post(routeReliable, &wire.RemoveShape{Shape: shape})
}

func (m *Messenger) SendAttachShape(actor wire.ActorID, shape wire.ShapeID, localPos wire.Vector, localOrient wire.Quat) {
	m.post(routeReliable, &wire.AttachShape{
		Actor:            actor,
		Shape:            shape,
		LocalPosition:    localPos,
		LocalOrientation: localOrient,
	})
}

func (m *Messenger) SendDetachShape(actor wire.ActorID, shape wire.ShapeID) {
	m.post(routeReliable, &wire.DetachShape{Actor: actor, Shape: shape})
}

func (m *Messenger) SendUpdateShapeMaterial(shape wire.ShapeID, mat wire.Material) {
	m.post(routeReliable, &wire.UpdateShapeMaterial{Shape: shape, Material: mat})
}

// Dynamics. Forces act for a single step, so a lost one degrades rather than
// corrupts the simulation.

func (m *Messenger) SendApplyForce(actor wire.ActorID, force wire.Vector) {
	m.post(routeBestEffort, &wire.ApplyForce{Actor: actor, Force: force})
}

func (m *Messenger) SendApplyTorque(actor wire.ActorID, torque wire.Vector) {
	m.post(routeBestEffort, &wire.ApplyTorque{Actor: actor, Torque: torque})
}
