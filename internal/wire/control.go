package wire

// Simulation-control messages (codes 1..15).

// EngineError is sent by the remote engine when it rejects a prior command.
// RefIndex is the msgIndex of the offending message; the reason text fills
// the rest of the body with no length prefix.
type EngineError struct {
	RefIndex uint32
	Reason   string
}

func (m *EngineError) Type() uint16 { return TypeError }
func (m *EngineError) size() int    { return 4 + len(m.Reason) }
func (m *EngineError) append(w *writer) {
	w.u32(m.RefIndex)
	w.buf = append(w.buf, m.Reason...)
}
func (m *EngineError) decode(r *reader) error {
	if r.remaining() < 4 {
		return ErrShortMessage
	}
	m.RefIndex = r.u32()
	m.Reason = string(r.buf[r.off:])
	r.off = len(r.buf)
	return nil
}

// Logon announces a simulation to the engine. It must reach the remote side,
// so the messenger sends it on both channels.
type Logon struct {
	SimID uint32
	Name  string
}

func (m *Logon) Type() uint16 { return TypeLogon }
func (m *Logon) size() int    { return 4 + NameFieldSize }
func (m *Logon) append(w *writer) {
	w.u32(m.SimID)
	w.name48(m.Name)
}
func (m *Logon) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.SimID = r.u32()
	m.Name = r.name48()
	return nil
}

// LogonReady is the engine's acknowledgement that the simulation may start
// issuing commands.
type LogonReady struct {
	SimID uint32
}

func (m *LogonReady) Type() uint16     { return TypeLogonReady }
func (m *LogonReady) size() int        { return 4 }
func (m *LogonReady) append(w *writer) { w.u32(m.SimID) }
func (m *LogonReady) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.SimID = r.u32()
	return nil
}

// Logoff detaches a simulation. Sent on both channels like Logon.
type Logoff struct {
	SimID uint32
}

func (m *Logoff) Type() uint16     { return TypeLogoff }
func (m *Logoff) size() int        { return 4 }
func (m *Logoff) append(w *writer) { w.u32(m.SimID) }
func (m *Logoff) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.SimID = r.u32()
	return nil
}

// AdvanceTime asks the engine to step the simulation forward.
type AdvanceTime struct {
	SimID uint32
	Step  float32
}

func (m *AdvanceTime) Type() uint16 { return TypeAdvanceTime }
func (m *AdvanceTime) size() int    { return 8 }
func (m *AdvanceTime) append(w *writer) {
	w.u32(m.SimID)
	w.f32(m.Step)
}
func (m *AdvanceTime) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.SimID = r.u32()
	m.Step = r.f32()
	return nil
}

// TimeAdvanced reports that the engine finished a step. The messenger only
// dispatches it when SimID matches its own scene.
type TimeAdvanced struct {
	SimID   uint32
	SimTime float32
}

func (m *TimeAdvanced) Type() uint16 { return TypeTimeAdvanced }
func (m *TimeAdvanced) size() int    { return 8 }
func (m *TimeAdvanced) append(w *writer) {
	w.u32(m.SimID)
	w.f32(m.SimTime)
}
func (m *TimeAdvanced) decode(r *reader) error {
	if r.remaining() < m.size() {
		return ErrShortMessage
	}
	m.SimID = r.u32()
	m.SimTime = r.f32()
	return nil
}
