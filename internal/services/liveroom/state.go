// Package liveroom owns the in-memory coordination state for live class
// rooms: which connection belongs to whom, who is present where, and the
// per-room poll/quiz material. Everything is process-local and lost on
// restart.
package liveroom

// State bundles the three stores behind one explicitly owned instance.
// Created once in main and handed to the ws server; tests create as many
// independent instances as they like.
type State struct {
	Registry     *ConnRegistry
	Membership   *MembershipTable
	Interactions *InteractionStore
}

func NewState() *State {
	return &State{
		Registry:     NewConnRegistry(),
		Membership:   NewMembershipTable(),
		Interactions: NewInteractionStore(),
	}
}
