package domain

import (
	"fmt"
	"strings"
)

// Archetype short names for the objects the workflows deal with
const (
	CustomerArchetype    = "party.customerperson"
	PatientArchetype     = "party.patientpet"
	UserArchetype        = "security.user"
	TillArchetype        = "party.organisationTill"
	PracticeArchetype    = "party.organisationPractice"
	LocationArchetype    = "party.organisationLocation"
	InvoiceArchetype     = "act.customerAccountChargesInvoice"
	PaymentArchetype     = "act.customerAccountPayment"
	AppointmentArchetype = "act.customerAppointment"
)

// Node names shared by several archetypes
const (
	NodeStatus   = "status"
	NodeAmount   = "amount"
	NodeCustomer = "customer"
	NodePatient  = "patient"
	NodeInvoice  = "invoice"
	NodePaid     = "paid"
)

// Act statuses
const (
	StatusInProgress = "IN_PROGRESS"
	StatusPosted     = "POSTED"
	StatusCheckedIn  = "CHECKED_IN"
	StatusCompleted  = "COMPLETED"
)

// Reference identifies an object by archetype and id.
type Reference struct {
	Archetype string `json:"archetype"`
	ID        string `json:"id"`
}

// String returns archetype:id
func (r Reference) String() string {
	return fmt.Sprintf("%s:%s", r.Archetype, r.ID)
}

// IsNew reports whether the reference has not been assigned an id yet.
func (r Reference) IsNew() bool {
	return r.ID == ""
}

// Object is a business object whose shape is described by its archetype
// rather than by a Go type. Node values are addressed by name.
type Object struct {
	Ref     Reference      `json:"ref"`
	Version int64          `json:"version"`
	Name    string         `json:"name"`
	Active  bool           `json:"active"`
	Nodes   map[string]any `json:"nodes"`
}

// New creates an unsaved object of the given archetype.
func New(archetype, name string) *Object {
	return &Object{
		Ref:    Reference{Archetype: archetype},
		Name:   name,
		Active: true,
		Nodes:  make(map[string]any),
	}
}

// Archetype returns the object's archetype short name.
func (o *Object) Archetype() string {
	return o.Ref.Archetype
}

// Get returns the value of a node, or nil if it isn't set.
func (o *Object) Get(node string) any {
	if o == nil || o.Nodes == nil {
		return nil
	}
	return o.Nodes[node]
}

// GetString returns a node value as a string.
func (o *Object) GetString(node string) string {
	switch v := o.Get(node).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Set updates a node value.
func (o *Object) Set(node string, value any) {
	if o.Nodes == nil {
		o.Nodes = make(map[string]any)
	}
	o.Nodes[node] = value
}

// IsA reports whether the object's archetype matches any of the short names.
// A trailing '*' matches by prefix, e.g. "act.customer*".
func (o *Object) IsA(shortNames ...string) bool {
	if o == nil {
		return false
	}
	for _, name := range shortNames {
		if MatchArchetype(o.Ref.Archetype, name) {
			return true
		}
	}
	return false
}

// MatchArchetype matches an archetype against a short name pattern.
func MatchArchetype(archetype, pattern string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(archetype, strings.TrimSuffix(pattern, "*"))
	}
	return archetype == pattern
}

// Equal reports whether both objects refer to the same persistent instance.
// Unsaved objects are only equal to themselves.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.Ref.IsNew() || other.Ref.IsNew() {
		return o == other
	}
	return o.Ref == other.Ref
}

// Clone returns a deep copy of the object. Nested maps and slices in node
// values are copied; other values are shared.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	c := *o
	c.Nodes = make(map[string]any, len(o.Nodes))
	for k, v := range o.Nodes {
		c.Nodes[k] = cloneValue(v)
	}
	return &c
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}

// String returns a short description for logs and dialogs
func (o *Object) String() string {
	if o == nil {
		return "<nil>"
	}
	if o.Name != "" {
		return fmt.Sprintf("%s (%s)", o.Name, o.Ref)
	}
	return o.Ref.String()
}
