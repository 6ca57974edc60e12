// Package messenger is the command/event surface between the simulation
// host and the remote physics engine.
//
// Outbound, it exposes one imperative method per protocol command, stamps
// each message with a monotonically increasing index, and routes it to the
// reliable channel, the best-effort channel, or redundantly to both.
// Inbound, it decodes messages drained from both channels and dispatches
// them to typed subscriber events. Calls made before Initialize are silent
// no-ops so the simulation loop never has to care whether the engine link
// is up yet.
package messenger
