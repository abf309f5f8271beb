package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObject_IsA(t *testing.T) {
	invoice := New(InvoiceArchetype, "Invoice 1")

	tests := []struct {
		name     string
		patterns []string
		expected bool
	}{
		{"exact match", []string{InvoiceArchetype}, true},
		{"wildcard match", []string{"act.customerAccount*"}, true},
		{"no match", []string{PatientArchetype}, false},
		{"any of several", []string{PatientArchetype, "act.*"}, true},
		{"no patterns", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, invoice.IsA(tt.patterns...))
		})
	}
}

func TestObject_Equal(t *testing.T) {
	a := New(CustomerArchetype, "J Smith")
	b := New(CustomerArchetype, "J Smith")

	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b), "unsaved objects are only equal to themselves")

	a.Ref.ID = "1"
	b.Ref.ID = "1"
	assert.True(t, a.Equal(b))

	b.Ref.ID = "2"
	assert.False(t, a.Equal(b))

	var nilObj *Object
	assert.True(t, nilObj.Equal(nil))
	assert.False(t, a.Equal(nil))
}

func TestObject_CloneIsDeep(t *testing.T) {
	o := New(InvoiceArchetype, "Invoice")
	o.Set("items", []any{map[string]any{"qty": 1}})
	o.Set(NodeStatus, StatusInProgress)

	c := o.Clone()
	c.Set(NodeStatus, StatusPosted)
	c.Get("items").([]any)[0].(map[string]any)["qty"] = 2

	assert.Equal(t, StatusInProgress, o.GetString(NodeStatus))
	assert.Equal(t, 1, o.Get("items").([]any)[0].(map[string]any)["qty"])
}

func TestObject_GetOnNil(t *testing.T) {
	var o *Object
	assert.Nil(t, o.Get(NodeStatus))
	assert.Equal(t, "", o.GetString(NodeStatus))
	assert.Equal(t, "<nil>", o.String())
}
