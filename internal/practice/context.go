// Package practice holds the property bag that carries the session and
// workflow scoped entity references: the current customer, patient,
// clinician, till and so on.
//
// Contexts are layered. A LocalContext or DelegatingContext answers reads
// from its own values first and falls back to the layers behind it; writes
// always land on the nearest layer and never leak into a fallback.
package practice

import (
	"github.com/maxkimambo/vetflow/internal/domain"
)

// Key identifies a well-known context slot.
type Key int

const (
	KeyCustomer Key = iota
	KeyPatient
	KeyClinician
	KeyUser
	KeyTill
	KeyPractice
	KeyLocation
	KeyInvoice
	KeyAppointment
)

// Keys lists the well-known slots in the order Objects reports them.
var Keys = []Key{
	KeyCustomer, KeyPatient, KeyClinician, KeyUser, KeyTill,
	KeyPractice, KeyLocation, KeyInvoice, KeyAppointment,
}

// String returns the slot name.
func (k Key) String() string {
	switch k {
	case KeyCustomer:
		return "customer"
	case KeyPatient:
		return "patient"
	case KeyClinician:
		return "clinician"
	case KeyUser:
		return "user"
	case KeyTill:
		return "till"
	case KeyPractice:
		return "practice"
	case KeyLocation:
		return "location"
	case KeyInvoice:
		return "invoice"
	case KeyAppointment:
		return "appointment"
	default:
		return "unknown"
	}
}

// Archetype returns the archetype normally held in the slot.
func (k Key) Archetype() string {
	switch k {
	case KeyCustomer:
		return domain.CustomerArchetype
	case KeyPatient:
		return domain.PatientArchetype
	case KeyClinician, KeyUser:
		return domain.UserArchetype
	case KeyTill:
		return domain.TillArchetype
	case KeyPractice:
		return domain.PracticeArchetype
	case KeyLocation:
		return domain.LocationArchetype
	case KeyInvoice:
		return domain.InvoiceArchetype
	case KeyAppointment:
		return domain.AppointmentArchetype
	default:
		return ""
	}
}

// Context is a layered property bag of domain object references.
type Context interface {
	// Get returns the object held in a well-known slot, or nil.
	Get(key Key) *domain.Object
	// Set stores an object in a well-known slot. A nil object clears the slot.
	Set(key Key, obj *domain.Object)

	Customer() *domain.Object
	SetCustomer(obj *domain.Object)
	Patient() *domain.Object
	SetPatient(obj *domain.Object)
	Clinician() *domain.Object
	SetClinician(obj *domain.Object)
	User() *domain.Object
	SetUser(obj *domain.Object)
	Till() *domain.Object
	SetTill(obj *domain.Object)
	Practice() *domain.Object
	SetPractice(obj *domain.Object)
	Location() *domain.Object
	SetLocation(obj *domain.Object)
	Invoice() *domain.Object
	SetInvoice(obj *domain.Object)
	Appointment() *domain.Object
	SetAppointment(obj *domain.Object)

	// Object returns the first object matching the archetype short name,
	// searching well-known slots then extension objects.
	Object(archetype string) *domain.Object
	// AddObject adds an extension object, replacing an equal one.
	AddObject(obj *domain.Object)
	// RemoveObject removes an extension object.
	RemoveObject(obj *domain.Object)
	// Objects returns every object the context can see.
	Objects() []*domain.Object
}

// slots is the minimal surface the typed accessors are built on.
type slots interface {
	Get(key Key) *domain.Object
	Set(key Key, obj *domain.Object)
}

// accessors implements the typed getters and setters of Context on top of
// Get and Set, so each layer only has to implement the keyed methods.
type accessors struct {
	s slots
}

func (a accessors) Customer() *domain.Object          { return a.s.Get(KeyCustomer) }
func (a accessors) SetCustomer(obj *domain.Object)    { a.s.Set(KeyCustomer, obj) }
func (a accessors) Patient() *domain.Object           { return a.s.Get(KeyPatient) }
func (a accessors) SetPatient(obj *domain.Object)     { a.s.Set(KeyPatient, obj) }
func (a accessors) Clinician() *domain.Object         { return a.s.Get(KeyClinician) }
func (a accessors) SetClinician(obj *domain.Object)   { a.s.Set(KeyClinician, obj) }
func (a accessors) User() *domain.Object              { return a.s.Get(KeyUser) }
func (a accessors) SetUser(obj *domain.Object)        { a.s.Set(KeyUser, obj) }
func (a accessors) Till() *domain.Object              { return a.s.Get(KeyTill) }
func (a accessors) SetTill(obj *domain.Object)        { a.s.Set(KeyTill, obj) }
func (a accessors) Practice() *domain.Object          { return a.s.Get(KeyPractice) }
func (a accessors) SetPractice(obj *domain.Object)    { a.s.Set(KeyPractice, obj) }
func (a accessors) Location() *domain.Object          { return a.s.Get(KeyLocation) }
func (a accessors) SetLocation(obj *domain.Object)    { a.s.Set(KeyLocation, obj) }
func (a accessors) Invoice() *domain.Object           { return a.s.Get(KeyInvoice) }
func (a accessors) SetInvoice(obj *domain.Object)     { a.s.Set(KeyInvoice, obj) }
func (a accessors) Appointment() *domain.Object       { return a.s.Get(KeyAppointment) }
func (a accessors) SetAppointment(obj *domain.Object) { a.s.Set(KeyAppointment, obj) }

// union merges two object lists. Fallback entries come first; a primary
// entry equal to a fallback entry replaces it in place.
func union(fallback, primary []*domain.Object) []*domain.Object {
	result := make([]*domain.Object, 0, len(fallback)+len(primary))
	result = append(result, fallback...)
	for _, obj := range primary {
		if i := indexOf(result, obj); i >= 0 {
			result[i] = obj
		} else {
			result = append(result, obj)
		}
	}
	return result
}

func indexOf(objects []*domain.Object, obj *domain.Object) int {
	for i, o := range objects {
		if o.Equal(obj) {
			return i
		}
	}
	return -1
}

func firstMatch(objects []*domain.Object, archetype string) *domain.Object {
	for _, o := range objects {
		if o.IsA(archetype) {
			return o
		}
	}
	return nil
}
