package noteshub

import (
	"github.com/morrisxyang/xreflect"
)

// SetNestedProp sets the (possibly nested, dot separated) field of obj to value.
func SetNestedProp(obj any, value any, fieldpath string) error {
	return xreflect.SetEmbedField(obj, fieldpath, value)
}
