package reflectutils

import (
	"reflect"

	"github.com/a-peyrard/syncseq/fn"
)

// WalkFields applies a tri-consumer on all exported fields and nested fields of the struct
// pointed by element, depth first. Nil pointers to structs are allocated on the way.
//
// Path elements use the mapstructure tag of a field when present, its name otherwise.
func WalkFields(element any, consumer fn.TriConsumer[reflect.Value, reflect.StructField, []string]) {
	walkFieldsInternal(Deref(reflect.ValueOf(element)), nil, consumer)
}

func walkFieldsInternal(val reflect.Value, path []string, consumer fn.TriConsumer[reflect.Value, reflect.StructField, []string]) {
	if !val.IsValid() || val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		structField := typ.Field(i)
		if !structField.IsExported() {
			continue
		}
		nestedVal := val.Field(i)
		CreateNilStruct(nestedVal)

		fieldPath := append(append([]string{}, path...), FieldName(structField))
		consumer(nestedVal, structField, fieldPath)
		walkFieldsInternal(Deref(nestedVal), fieldPath, consumer)
	}
}

// FieldName returns the name of the field as seen by mapstructure.
func FieldName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("mapstructure"); ok && tag != "" && tag != "-" {
		return tag
	}
	return field.Name
}

// IsStruct tells if the given type is a struct or a pointer to a struct.
func IsStruct(typ reflect.Type) bool {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ.Kind() == reflect.Struct
}

// Deref dereferences recursively a reflect.Value until it reaches a non-pointer or non-interface value
func Deref(value reflect.Value) reflect.Value {
	if value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface {
		return Deref(value.Elem())
	}
	return value
}

// CreateNilStruct allocates a new struct instance if val is a settable nil struct pointer
func CreateNilStruct(val reflect.Value) {
	if val.Kind() == reflect.Pointer &&
		val.IsNil() &&
		val.CanSet() &&
		val.Type().Elem().Kind() == reflect.Struct {

		val.Set(reflect.New(val.Type().Elem()))
	}
}
