package actions

import "context"

// Position is a world-space location.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// DistanceSquared returns the squared euclidean distance to other.
func (p Position) DistanceSquared(other Position) float64 {
	dx, dy, dz := p.X-other.X, p.Y-other.Y, p.Z-other.Z
	return dx*dx + dy*dy + dz*dz
}

// Device is an opaque handle on the target object.
type Device struct {
	ID       string   `json:"id" yaml:"id"`
	Position Position `json:"position" yaml:"position"`
}

// Valid reports whether the handle refers to a device. Nil is invalid.
func (d *Device) Valid() bool {
	return d != nil && d.ID != ""
}

// Subject is an opaque handle on the acting user.
type Subject struct {
	ID string `json:"id" yaml:"id"`
}

// Valid reports whether the handle refers to a subject.
func (s Subject) Valid() bool {
	return s.ID != ""
}

type subjectKey struct{}

// WithSubject returns a copy of ctx carrying the acting subject.
func WithSubject(ctx context.Context, subject Subject) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// SubjectFromContext returns the acting subject, if any.
func SubjectFromContext(ctx context.Context) (Subject, bool) {
	if ctx == nil {
		return Subject{}, false
	}
	s, ok := ctx.Value(subjectKey{}).(Subject)
	if !ok || !s.Valid() {
		return Subject{}, false
	}
	return s, true
}
