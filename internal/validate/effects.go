package validate

// EffectKind identifies a declared side-effect instruction.
type EffectKind string

// EffectDeactivateParticipant instructs the repository to flip the named
// participant's active flag to false.
const EffectDeactivateParticipant EffectKind = "deactivate_participant"

// Effect is a side-effect instruction emitted by a successful check. It is
// not a constraint: the validation engine declares it, the repository
// executes it inside the same transaction as the triggering commit.
type Effect struct {
	Kind EffectKind
	Name string
}
