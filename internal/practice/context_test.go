package practice

import (
	"testing"

	"github.com/maxkimambo/vetflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saved(archetype, name, id string) *domain.Object {
	obj := domain.New(archetype, name)
	obj.Ref.ID = id
	return obj
}

func TestDelegatingContext_ReadsFallbackWhenPrimaryEmpty(t *testing.T) {
	fallback := NewLocalContext(nil)
	primary := NewLocalContext(nil)
	customer := saved(domain.CustomerArchetype, "J Smith", "c1")
	fallback.SetCustomer(customer)

	ctx := NewDelegatingContext(primary, fallback)

	assert.Same(t, customer, ctx.Customer())
	assert.Nil(t, primary.Customer(), "primary must not be populated by a read")
}

func TestDelegatingContext_PrimaryOverridesFallback(t *testing.T) {
	fallback := NewLocalContext(nil)
	primary := NewLocalContext(nil)
	fallback.SetPatient(saved(domain.PatientArchetype, "Fido", "p1"))
	rex := saved(domain.PatientArchetype, "Rex", "p2")
	primary.SetPatient(rex)

	ctx := NewDelegatingContext(primary, fallback)

	assert.Same(t, rex, ctx.Patient())
}

func TestDelegatingContext_WritesOnlyToPrimary(t *testing.T) {
	fallback := NewLocalContext(nil)
	primary := NewLocalContext(nil)
	ctx := NewDelegatingContext(primary, fallback)

	till := saved(domain.TillArchetype, "Main Till", "t1")
	ctx.SetTill(till)

	assert.Same(t, till, primary.Till())
	assert.Nil(t, fallback.Till())

	ctx.AddObject(saved("entity.productMedication", "Drug", "m1"))
	assert.Len(t, primary.Objects(), 2)
	assert.Empty(t, fallback.Objects())
}

func TestDelegatingContext_ClearingPrimaryRevealsFallback(t *testing.T) {
	fallback := NewLocalContext(nil)
	primary := NewLocalContext(nil)
	old := saved(domain.LocationArchetype, "Branch A", "l1")
	fallback.SetLocation(old)
	primary.SetLocation(saved(domain.LocationArchetype, "Branch B", "l2"))
	ctx := NewDelegatingContext(primary, fallback)

	ctx.SetLocation(nil)

	assert.Same(t, old, ctx.Location())
}

func TestDelegatingContext_SameFallbackAsPrimary(t *testing.T) {
	local := NewLocalContext(nil)
	ctx := NewDelegatingContext(local, local)

	assert.Nil(t, ctx.Customer())
	customer := saved(domain.CustomerArchetype, "J Smith", "c1")
	ctx.SetCustomer(customer)
	assert.Len(t, ctx.Objects(), 1, "a self fallback must not duplicate objects")
}

func TestDelegatingContext_ObjectsUnion(t *testing.T) {
	fallback := NewLocalContext(nil)
	primary := NewLocalContext(nil)

	staleInvoice := saved(domain.InvoiceArchetype, "Invoice v1", "i1")
	freshInvoice := saved(domain.InvoiceArchetype, "Invoice v2", "i1")
	customer := saved(domain.CustomerArchetype, "J Smith", "c1")
	patient := saved(domain.PatientArchetype, "Fido", "p1")

	fallback.SetCustomer(customer)
	fallback.SetInvoice(staleInvoice)
	primary.SetInvoice(freshInvoice)
	primary.SetPatient(patient)

	objects := NewDelegatingContext(primary, fallback).Objects()

	require.Len(t, objects, 3)
	assert.Same(t, customer, objects[0])
	assert.Same(t, freshInvoice, objects[1], "primary replaces the equal fallback entry in place")
	assert.Same(t, patient, objects[2])
}

func TestDelegatingContext_ObjectByArchetype(t *testing.T) {
	fallback := NewLocalContext(nil)
	primary := NewLocalContext(nil)
	payment := saved(domain.PaymentArchetype, "Payment", "pay1")
	fallback.AddObject(payment)

	ctx := NewDelegatingContext(primary, fallback)

	assert.Same(t, payment, ctx.Object(domain.PaymentArchetype))
	assert.Same(t, payment, ctx.Object("act.customerAccount*"))
	assert.Nil(t, ctx.Object(domain.AppointmentArchetype))
}

func TestChain_ReadsFrontToBack(t *testing.T) {
	primary := NewLocalContext(nil)
	first := NewLocalContext(nil)
	second := NewLocalContext(nil)

	firstPractice := saved(domain.PracticeArchetype, "Vets R Us", "pr1")
	secondPractice := saved(domain.PracticeArchetype, "Other", "pr2")
	clinician := saved(domain.UserArchetype, "Dr Who", "u1")

	first.SetPractice(firstPractice)
	second.SetPractice(secondPractice)
	second.SetClinician(clinician)

	ctx := Chain(primary, first, second)

	assert.Same(t, firstPractice, ctx.Practice())
	assert.Same(t, clinician, ctx.Clinician())
	assert.Nil(t, ctx.Customer())

	ctx.SetCustomer(saved(domain.CustomerArchetype, "J Smith", "c1"))
	assert.NotNil(t, primary.Customer())
	assert.Nil(t, first.Customer())
	assert.Nil(t, second.Customer())
}

func TestChain_NoFallbacks(t *testing.T) {
	primary := NewLocalContext(nil)
	assert.Same(t, primary, Chain(primary))
	assert.Same(t, primary, Chain(primary, nil))
}

func TestLocalContext_ParentReadThrough(t *testing.T) {
	parent := NewLocalContext(nil)
	child := NewLocalContext(parent)

	user := saved(domain.UserArchetype, "admin", "u1")
	parent.SetUser(user)
	assert.Same(t, user, child.User())

	override := saved(domain.UserArchetype, "vet", "u2")
	child.SetUser(override)
	assert.Same(t, override, child.User())
	assert.Same(t, user, parent.User())
}

func TestLocalContext_ExtensionObjects(t *testing.T) {
	ctx := NewLocalContext(nil)
	a := saved("entity.reminderType", "Vaccination", "r1")
	aUpdated := saved("entity.reminderType", "Vaccination (renamed)", "r1")

	ctx.AddObject(a)
	ctx.AddObject(aUpdated)
	require.Len(t, ctx.Objects(), 1)
	assert.Same(t, aUpdated, ctx.Object("entity.reminderType"))

	ctx.RemoveObject(a)
	assert.Empty(t, ctx.Objects())

	ctx.AddObject(nil)
	assert.Empty(t, ctx.Objects())
}

func TestKey_Strings(t *testing.T) {
	for _, key := range Keys {
		assert.NotEqual(t, "unknown", key.String())
		assert.NotEmpty(t, key.Archetype())
	}
	assert.Equal(t, "unknown", Key(99).String())
}
