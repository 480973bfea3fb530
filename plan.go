package codebook

import (
	"reflect"
	"sync"

	"github.com/zoobzio/sentinel"
)

// fieldStep is one hop on the way to a tagged field.
type fieldStep struct {
	index int  // struct field index
	deref bool // the field is a pointer to a struct to follow
}

// fieldPlan describes how to reach and transform a single tagged field.
type fieldPlan struct {
	path    []fieldStep
	name    string // dotted field name for error messages
	tagVal  string // cipher name as written in the tag
	cipher  string // normalized cipher name, set by NewProcessor
	isBytes bool   // field is []byte
	isSlice bool   // field is []string
	isMap   bool   // field is map[K]string
}

// resolve walks the plan's path from rv. It reports false when a pointer
// along the way is nil.
func (p fieldPlan) resolve(rv reflect.Value) (reflect.Value, bool) {
	current := rv
	for _, step := range p.path {
		current = current.Field(step.index)
		if step.deref {
			if current.IsNil() {
				return reflect.Value{}, false
			}
			current = current.Elem()
		}
	}
	return current, true
}

// typeFieldPlans is the registry-independent scan result for one type.
type typeFieldPlans struct {
	typeName string
	fields   []fieldPlan
}

var planCache sync.Map // reflect.Type -> *typeFieldPlans

// getOrBuildPlans returns cached field plans for T, scanning on first use.
func getOrBuildPlans[T any]() (*typeFieldPlans, error) {
	typ := reflect.TypeFor[T]()
	if cached, ok := planCache.Load(typ); ok {
		return cached.(*typeFieldPlans), nil
	}

	plans, err := buildFieldPlans[T]()
	if err != nil {
		return nil, err
	}
	actual, _ := planCache.LoadOrStore(typ, plans)
	return actual.(*typeFieldPlans), nil
}

// scannedField is the part of a struct field the planner needs.
type scannedField struct {
	name  string
	index int
	typ   reflect.Type
	tag   string
}

// buildFieldPlans creates field plans for type T by scanning struct tags.
func buildFieldPlans[T any]() (*typeFieldPlans, error) {
	meta := sentinel.Scan[T]()
	plans := &typeFieldPlans{typeName: meta.TypeName}

	if err := plans.collect(fromMetadata(meta), nil, ""); err != nil {
		return nil, err
	}
	return plans, nil
}

// collect appends plans for tagged fields, descending into struct values and
// pointers to structs.
func (plans *typeFieldPlans) collect(fields []scannedField, parent []fieldStep, prefix string) error {
	for _, f := range fields {
		name := f.name
		if prefix != "" {
			name = prefix + "." + f.name
		}

		switch {
		case f.typ.Kind() == reflect.Struct:
			path := appendStep(parent, fieldStep{index: f.index})
			if err := plans.collect(nestedFields(f.typ), path, name); err != nil {
				return err
			}
			continue
		case f.typ.Kind() == reflect.Pointer && f.typ.Elem().Kind() == reflect.Struct:
			path := appendStep(parent, fieldStep{index: f.index, deref: true})
			if err := plans.collect(nestedFields(f.typ.Elem()), path, name); err != nil {
				return err
			}
			continue
		}

		if f.tag == "" || f.tag == "-" {
			continue
		}

		rt := f.typ
		isString := rt.Kind() == reflect.String
		isBytes := rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.Uint8
		isSlice := rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.String
		isMap := rt.Kind() == reflect.Map && rt.Elem().Kind() == reflect.String

		if !isString && !isBytes && !isSlice && !isMap {
			return newConfigError(ErrInvalidTag, f.tag, "field "+name+" has unsupported type "+rt.String())
		}

		plans.fields = append(plans.fields, fieldPlan{
			path:    appendStep(parent, fieldStep{index: f.index}),
			name:    name,
			tagVal:  f.tag,
			isBytes: isBytes,
			isSlice: isSlice,
			isMap:   isMap,
		})
	}
	return nil
}

func appendStep(parent []fieldStep, step fieldStep) []fieldStep {
	return append(append(make([]fieldStep, 0, len(parent)+1), parent...), step)
}

// fromMetadata converts sentinel's scan of a type.
func fromMetadata(meta sentinel.Metadata) []scannedField {
	out := make([]scannedField, 0, len(meta.Fields))
	for _, f := range meta.Fields {
		if len(f.Index) != 1 {
			continue
		}
		out = append(out, scannedField{
			name:  f.Name,
			index: f.Index[0],
			typ:   f.ReflectType,
			tag:   f.Tags[TagName],
		})
	}
	return out
}

// nestedFields returns the fields of a nested struct, from sentinel's cache
// when it has seen the type and by reflection otherwise.
func nestedFields(rt reflect.Type) []scannedField {
	if meta, ok := sentinel.Lookup(rt.String()); ok {
		return fromMetadata(meta)
	}

	out := make([]scannedField, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		out = append(out, scannedField{
			name:  sf.Name,
			index: i,
			typ:   sf.Type,
			tag:   sf.Tag.Get(TagName),
		})
	}
	return out
}
