package practice

import "github.com/maxkimambo/vetflow/internal/domain"

// LocalContext holds its own values and optionally reads through to a parent.
type LocalContext struct {
	accessors
	values  map[Key]*domain.Object
	objects []*domain.Object
	parent  Context
}

// NewLocalContext creates a context. parent may be nil.
func NewLocalContext(parent Context) *LocalContext {
	c := &LocalContext{
		values: make(map[Key]*domain.Object),
		parent: parent,
	}
	c.accessors = accessors{s: c}
	return c
}

// Parent returns the context reads fall back to, or nil.
func (c *LocalContext) Parent() Context {
	return c.parent
}

// Get returns the local value, falling back to the parent.
func (c *LocalContext) Get(key Key) *domain.Object {
	if obj := c.values[key]; obj != nil {
		return obj
	}
	if c.parent != nil {
		return c.parent.Get(key)
	}
	return nil
}

// Set always writes locally.
func (c *LocalContext) Set(key Key, obj *domain.Object) {
	if obj == nil {
		delete(c.values, key)
		return
	}
	c.values[key] = obj
}

// Object searches local slots and objects before the parent.
func (c *LocalContext) Object(archetype string) *domain.Object {
	if obj := firstMatch(c.local(), archetype); obj != nil {
		return obj
	}
	if c.parent != nil {
		return c.parent.Object(archetype)
	}
	return nil
}

func (c *LocalContext) AddObject(obj *domain.Object) {
	if obj == nil {
		return
	}
	if i := indexOf(c.objects, obj); i >= 0 {
		c.objects[i] = obj
		return
	}
	c.objects = append(c.objects, obj)
}

func (c *LocalContext) RemoveObject(obj *domain.Object) {
	if i := indexOf(c.objects, obj); i >= 0 {
		c.objects = append(c.objects[:i], c.objects[i+1:]...)
	}
}

// Objects returns the parent's objects followed by local ones.
func (c *LocalContext) Objects() []*domain.Object {
	if c.parent == nil {
		return c.local()
	}
	return union(c.parent.Objects(), c.local())
}

func (c *LocalContext) local() []*domain.Object {
	result := make([]*domain.Object, 0, len(c.values)+len(c.objects))
	for _, key := range Keys {
		if obj := c.values[key]; obj != nil {
			result = append(result, obj)
		}
	}
	for _, obj := range c.objects {
		if indexOf(result, obj) < 0 {
			result = append(result, obj)
		}
	}
	return result
}
