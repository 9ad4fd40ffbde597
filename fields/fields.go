// Package fields supplies per-object-type adapters that turn CMS content
// into flat candidate field lists.
//
// The engine never knows how to fetch a post title or walk a page-builder
// blob; each collaborator registers ContentField descriptors (or extractors)
// that resolve live values at the boundary, and the engine only compares
// those values against stored hashes.
package fields

import "github.com/nesmachny/translio"

// ContentField describes one translatable field of an object type: the field
// name, a human context hint for the provider, and a getter resolving the
// live value for a given object id.
type ContentField struct {
	ObjectType string
	FieldName  string
	Context    string
	Get        func(objectID string) (string, error)
}

// Resolve materializes descriptors into candidate fields for one object.
// Fields whose getter fails abort resolution; empty values are kept (the
// planner drops them later) so progress reporting sees the full field set.
func Resolve(objectID string, descriptors []ContentField) ([]translio.SourceField, error) {
	out := make([]translio.SourceField, 0, len(descriptors))
	for _, d := range descriptors {
		value, err := d.Get(objectID)
		if err != nil {
			return nil, err
		}
		out = append(out, translio.SourceField{
			ObjectID:   objectID,
			ObjectType: d.ObjectType,
			FieldName:  d.FieldName,
			Value:      value,
			Context:    d.Context,
		})
	}
	return out, nil
}

// Registry collects content field descriptors per object type.
type Registry struct {
	byType map[string][]ContentField
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byType: make(map[string][]ContentField)}
}

// Register adds a descriptor under its object type.
func (r *Registry) Register(d ContentField) {
	r.byType[d.ObjectType] = append(r.byType[d.ObjectType], d)
}

// For returns the descriptors registered for an object type.
func (r *Registry) For(objectType string) []ContentField {
	return r.byType[objectType]
}

// Types returns the object types with registered descriptors.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.byType))
	for t := range r.byType {
		out = append(out, t)
	}
	return out
}
