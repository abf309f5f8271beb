package practice

import "github.com/maxkimambo/vetflow/internal/domain"

// DelegatingContext presents a primary context read through to a fallback.
//
// Reads query the primary and, when it has nothing, the fallback. Writes
// only ever go to the primary.
type DelegatingContext struct {
	accessors
	primary  Context
	fallback Context
}

// NewDelegatingContext wraps primary. fallback may be nil.
func NewDelegatingContext(primary, fallback Context) *DelegatingContext {
	c := &DelegatingContext{primary: primary, fallback: fallback}
	c.accessors = accessors{s: c}
	return c
}

// Chain composes an ordered list of fallbacks behind primary. Reads consult
// primary, then each fallback front to back until a value is found.
func Chain(primary Context, fallbacks ...Context) Context {
	var tail Context
	for i := len(fallbacks) - 1; i >= 0; i-- {
		if fallbacks[i] == nil {
			continue
		}
		if tail == nil {
			tail = fallbacks[i]
		} else {
			tail = NewDelegatingContext(fallbacks[i], tail)
		}
	}
	if tail == nil {
		return primary
	}
	return NewDelegatingContext(primary, tail)
}

// Primary returns the context writes go to.
func (c *DelegatingContext) Primary() Context {
	return c.primary
}

// Fallback returns the context consulted on a read miss, or nil.
func (c *DelegatingContext) Fallback() Context {
	return c.fallback
}

func (c *DelegatingContext) hasFallback() bool {
	return c.fallback != nil && c.fallback != c.primary
}

func (c *DelegatingContext) Get(key Key) *domain.Object {
	obj := c.primary.Get(key)
	if obj == nil && c.hasFallback() {
		obj = c.fallback.Get(key)
	}
	return obj
}

func (c *DelegatingContext) Set(key Key, obj *domain.Object) {
	c.primary.Set(key, obj)
}

func (c *DelegatingContext) Object(archetype string) *domain.Object {
	obj := c.primary.Object(archetype)
	if obj == nil && c.hasFallback() {
		obj = c.fallback.Object(archetype)
	}
	return obj
}

func (c *DelegatingContext) AddObject(obj *domain.Object) {
	c.primary.AddObject(obj)
}

func (c *DelegatingContext) RemoveObject(obj *domain.Object) {
	c.primary.RemoveObject(obj)
}

// Objects returns the union of both layers, fallback first.
func (c *DelegatingContext) Objects() []*domain.Object {
	if !c.hasFallback() {
		return c.primary.Objects()
	}
	return union(c.fallback.Objects(), c.primary.Objects())
}
