package wire

// Message type codes, grouped by hundreds: simulation control, actor
// lifecycle, joints, shapes, dynamics/collision.
const (
	TypeError        uint16 = 1
	TypeLogon        uint16 = 11
	TypeLogonReady   uint16 = 12
	TypeLogoff       uint16 = 13
	TypeAdvanceTime  uint16 = 14
	TypeTimeAdvanced uint16 = 15

	TypeSetWorld                   uint16 = 101
	TypeCreateStaticActor          uint16 = 102
	TypeCreateDynamicActor         uint16 = 103
	TypeSetStaticActor             uint16 = 104
	TypeSetDynamicActor            uint16 = 105
	TypeUpdateActorPosition        uint16 = 106
	TypeUpdateActorOrientation     uint16 = 107
	TypeUpdateActorGravityModifier uint16 = 108
	TypeUpdateActorLinearVelocity  uint16 = 109
	TypeUpdateActorAngularVelocity uint16 = 110
	TypeUpdateActorMass            uint16 = 111
	TypeGetActorMass               uint16 = 112
	TypeRemoveActor                uint16 = 113
	TypeDynamicActorUpdateMass     uint16 = 114

	TypeAddJoint    uint16 = 201
	TypeRemoveJoint uint16 = 202

	TypeAddSphere           uint16 = 301
	TypeAddBox              uint16 = 302
	TypeAddCapsule          uint16 = 303
	TypeAddPlane            uint16 = 304
	TypeAddConvexMesh       uint16 = 305
	TypeAddTriangleMesh     uint16 = 306
	TypeAddHeightField      uint16 = 307
	TypeRemoveShape         uint16 = 308
	TypeAttachShape         uint16 = 309
	TypeUpdateShapeMaterial uint16 = 310
	TypeDetachShape         uint16 = 311

	TypeActorsCollided uint16 = 401
	TypeApplyForce     uint16 = 402
	TypeApplyTorque    uint16 = 403
)

// Body is one typed message body. size reports the exact encoded byte count
// (variable bodies compute it from their element counts), append writes the
// big-endian layout, and decode reads it back from a length-checked reader.
type Body interface {
	Type() uint16
	size() int
	append(w *writer)
	decode(r *reader) error
}

// bodyForType returns a zero value of the body that decodes the given type
// code, or nil when the code is not in the catalog.
func bodyForType(t uint16) Body {
	switch t {
	case TypeError:
		return &EngineError{}
	case TypeLogon:
		return &Logon{}
	case TypeLogonReady:
		return &LogonReady{}
	case TypeLogoff:
		return &Logoff{}
	case TypeAdvanceTime:
		return &AdvanceTime{}
	case TypeTimeAdvanced:
		return &TimeAdvanced{}
	case TypeSetWorld:
		return &SetWorld{}
	case TypeCreateStaticActor:
		return &CreateStaticActor{}
	case TypeCreateDynamicActor:
		return &CreateDynamicActor{}
	case TypeSetStaticActor:
		return &SetStaticActor{}
	case TypeSetDynamicActor:
		return &SetDynamicActor{}
	case TypeUpdateActorPosition:
		return &UpdateActorPosition{}
	case TypeUpdateActorOrientation:
		return &UpdateActorOrientation{}
	case TypeUpdateActorGravityModifier:
		return &UpdateActorGravityModifier{}
	case TypeUpdateActorLinearVelocity:
		return &UpdateActorLinearVelocity{}
	case TypeUpdateActorAngularVelocity:
		return &UpdateActorAngularVelocity{}
	case TypeUpdateActorMass:
		return &UpdateActorMass{}
	case TypeGetActorMass:
		return &GetActorMass{}
	case TypeRemoveActor:
		return &RemoveActor{}
	case TypeDynamicActorUpdateMass:
		return &DynamicActorUpdateMass{}
	case TypeAddJoint:
		return &AddJoint{}
	case TypeRemoveJoint:
		return &RemoveJoint{}
	case TypeAddSphere:
		return &AddSphere{}
	case TypeAddBox:
		return &AddBox{}
	case TypeAddCapsule:
		return &AddCapsule{}
	case TypeAddPlane:
		return &AddPlane{}
	case TypeAddConvexMesh:
		return &AddConvexMesh{}
	case TypeAddTriangleMesh:
		return &AddTriangleMesh{}
	case TypeAddHeightField:
		return &AddHeightField{}
	case TypeRemoveShape:
		return &RemoveShape{}
	case TypeAttachShape:
		return &AttachShape{}
	case TypeUpdateShapeMaterial:
		return &UpdateShapeMaterial{}
	case TypeDetachShape:
		return &DetachShape{}
	case TypeActorsCollided:
		return &ActorsCollided{}
	case TypeApplyForce:
		return &ApplyForce{}
	case TypeApplyTorque:
		return &ApplyTorque{}
	default:
		return nil
	}
}
