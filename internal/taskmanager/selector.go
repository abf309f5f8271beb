package taskmanager

import (
	"github.com/maxkimambo/vetflow/internal/domain"
	"github.com/maxkimambo/vetflow/internal/practice"
)

// Selector locates the object a task works on, either in a well-known
// context slot or among the extension objects by archetype.
type Selector struct {
	key       practice.Key
	archetype string
}

// ByKey selects the object in a well-known slot.
func ByKey(key practice.Key) Selector {
	return Selector{key: key}
}

// ByArchetype selects the first extension object of an archetype.
func ByArchetype(archetype string) Selector {
	return Selector{archetype: archetype}
}

func (s Selector) String() string {
	if s.archetype != "" {
		return s.archetype
	}
	return s.key.String()
}

// Lookup returns the selected object, or nil.
func (s Selector) Lookup(tc practice.Context) *domain.Object {
	if s.archetype != "" {
		return tc.Object(s.archetype)
	}
	return tc.Get(s.key)
}

// Store puts obj where the selector looks, replacing old if given.
func (s Selector) Store(tc practice.Context, old, obj *domain.Object) {
	if s.archetype == "" {
		tc.Set(s.key, obj)
		return
	}
	if old != nil {
		tc.RemoveObject(old)
	}
	tc.AddObject(obj)
}
