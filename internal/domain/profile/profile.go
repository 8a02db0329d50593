// Package profile defines the fixed researcher profile value type.
// Whatever field set an upstream system carries, it collapses to this
// record at the store boundary; the engine never branches on legacy
// attribute names.
package profile

// Profile is a researcher profile as the matching engine sees it:
// an opaque stable id, display attributes, and a precomputed embedding.
// Display attributes feed match reasons only, never scoring arithmetic.
type Profile struct {
	id          string
	name        string
	affiliation string
	interests   []string
	embedding   []float32
}

// New creates a profile.
func New(id, name, affiliation string, interests []string, embedding []float32) Profile {
	return Profile{
		id:          id,
		name:        name,
		affiliation: affiliation,
		interests:   interests,
		embedding:   embedding,
	}
}

// ID returns the opaque stable profile identifier.
func (p *Profile) ID() string { return p.id }

// Name returns the display name.
func (p *Profile) Name() string { return p.name }

// Affiliation returns the institution-like display field.
func (p *Profile) Affiliation() string { return p.affiliation }

// Interests returns the declared interest tags.
func (p *Profile) Interests() []string { return p.interests }

// Embedding returns the precomputed profile embedding.
// May be nil or of unexpected length; scoring treats that as similarity 0.
func (p *Profile) Embedding() []float32 { return p.embedding }
