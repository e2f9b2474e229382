// Package rcigen generates the C descriptor tables and type definitions
// consumed by an embedded Remote Configuration Interface (RCI) runtime.
//
// A generation run takes a validated model.ConfigModel and an Options bundle
// and derives, in a fixed order:
//
//   - the set of active element types (model.ActiveTypes)
//   - the value-holder layout (SynthesizeLayout)
//   - the three-tier error code numbering (AllocateErrorCodes)
//   - the error description string pool (CollectPoolEntries, EncodePool)
//
// These facts are collected once into a Plan. Artifacts are rendered from
// the Plan by pure functions, so the combined header and the split
// definitions/data pair always agree on codes and offsets.
//
// # Artifacts
//
// In combined mode a single header (remote_config.h) holds the declarations
// and, behind CONNECTOR_RCI_PARSER_INTERNAL_DATA, the data tables. In split
// mode the declarations go to rci_config.h and the data to rci_config.c; the
// data artifact obtains the global error count through the published
// connector_global_error_COUNT constant.
//
// # Usage
//
//	m, err := model.Load("config.yaml")
//	if err != nil {
//		return err
//	}
//	opts := rcigen.DefaultOptions()
//	opts.FirmwareVersion = 0x01000000
//	if err := rcigen.WriteCombined(os.Stdout, m, opts); err != nil {
//		return err
//	}
package rcigen
