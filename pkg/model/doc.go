// Package model defines the remote configuration model consumed by the RCI
// table generator.
//
// A ConfigModel holds two fixed categories (setting and state). Each category
// owns an ordered list of Groups; each Group owns typed Elements and an ordered
// map of local error descriptions. The model also carries the protocol
// reserved errors and the user defined global errors.
//
// # Element types
//
// ElementType is a closed catalog. Every type has a stable numeric code shared
// with the embedded runtime; ActiveTypes derives, per model, which of them are
// in use:
//
//	m, err := model.Load("config.yaml")
//	if err != nil {
//	    return err
//	}
//	active := model.ActiveTypes(m)
//	if active.Has(model.TypeFloat) {
//	    // float support is required
//	}
//
// # Definition files
//
// Load and Parse read the YAML definition format and run Validate. Error maps
// keep their declaration order, which the generator relies on.
package model
