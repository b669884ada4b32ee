package acorn

import "reflect"

// TypeOf returns the interface token for T. Tokens are plain [reflect.Type]
// values, so they are comparable and usable as map keys:
//
//	tok := acorn.TypeOf[Database]()
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
