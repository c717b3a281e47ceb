// Package model defines the serializable data model: a closed tagged union of
// primitives, text, byte blobs, sequences, maps, optionals, structs and enum
// variants.
//
// A Value is built by the caller right before a conversion and discarded after:
//
//	v := model.Struct("Point",
//		model.FieldOf("x", model.I32(1)),
//		model.FieldOf("y", model.I32(2)),
//	)
//
// Kind selects which payload fields are meaningful. Consumers switch on Kind and
// handle every case; the set is fixed.
//
// Types that know their own model representation implement Marshaler and
// Unmarshaler, which the reflection adapter in the transcoder package consults
// before falling back to field walking.
package model
