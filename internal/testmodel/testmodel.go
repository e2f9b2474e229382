// Package testmodel provides configuration models shared by tests.
package testmodel

import "github.com/rci-tools/rcigen/pkg/model"

// Serial returns a model with two protocol errors, no global errors and one
// setting group "serial" holding an unsigned baud rate, a read-only label and
// the local error "overrun".
func Serial() *model.ConfigModel {
	m := model.NewConfigModel(model.ErrorMap{
		{Key: "bad_command", Description: model.Describe("Bad command")},
		{Key: "timeout", Description: model.Describe("Timeout")},
	})
	m.AddGroup(model.CategorySetting, model.Group{
		Name: "serial",
		Elements: []model.Element{
			{Name: "baud", Type: model.TypeUint32},
			{Name: "label", Type: model.TypeString, Access: model.AccessReadOnly},
		},
		Errors: model.ErrorMap{
			{Key: "overrun", Description: model.Describe("Overrun")},
		},
	})
	return m
}

// Device returns a model that exercises every element type, both categories,
// global errors, a null description, an enum placeholder and a password.
func Device() *model.ConfigModel {
	m := model.NewConfigModel(model.DefaultRCIErrors())
	m.GlobalErrors = model.ErrorMap{
		{Key: "load_fail", Description: model.Describe("Load fail")},
		{Key: "save_fail", Description: model.Describe("Save fail")},
		{Key: "memory_fail", Description: nil},
	}

	m.AddGroup(model.CategorySetting, model.Group{
		Name:      "serial",
		Instances: 2,
		Elements: []model.Element{
			{Name: "baud", Type: model.TypeEnum, Values: []model.EnumValue{
				{Name: "2400"}, {Name: "4800"}, {Name: ""}, {Name: "19200"},
			}},
			{Name: "databits", Type: model.TypeUint32},
			{Name: "xbreak", Type: model.TypeOnOff},
			{Name: "txbytes", Type: model.TypeHex32, Access: model.AccessReadOnly},
		},
		Errors: model.ErrorMap{
			{Key: "invalid_baud", Description: model.Describe("Invalid baud rate")},
			{Key: "invalid_databits", Description: model.Describe("Invalid data bits")},
		},
	})
	m.AddGroup(model.CategorySetting, model.Group{
		Name: "ethernet",
		Elements: []model.Element{
			{Name: "ip", Type: model.TypeIPv4},
			{Name: "dhcp", Type: model.TypeBoolean},
			{Name: "dns", Type: model.TypeFQDNv4},
			{Name: "dns6", Type: model.TypeFQDNv6},
		},
		Errors: model.ErrorMap{
			{Key: "invalid_ip", Description: model.Describe("Invalid IP address")},
		},
	})
	m.AddGroup(model.CategorySetting, model.Group{
		Name: "device_info",
		Elements: []model.Element{
			{Name: "version", Type: model.TypeXHex32, Access: model.AccessReadOnly},
			{Name: "desc", Type: model.TypeMultilineString},
			{Name: "password", Type: model.TypePassword},
		},
	})
	m.AddGroup(model.CategorySetting, model.Group{
		Name: "system",
		Elements: []model.Element{
			{Name: "curtime", Type: model.TypeDateTime},
			{Name: "contact", Type: model.TypeString},
		},
	})

	m.AddGroup(model.CategoryState, model.Group{
		Name: "device_state",
		Elements: []model.Element{
			{Name: "up_time", Type: model.TypeUint32, Access: model.AccessReadOnly},
			{Name: "signed_integer", Type: model.TypeInt32},
			{Name: "temperature", Type: model.TypeFloat, Access: model.AccessReadOnly},
		},
		Errors: model.ErrorMap{
			{Key: "invalid_integer", Description: model.Describe("Invalid integer")},
		},
	})
	return m
}

// Strings returns a model whose only element type is string.
func Strings() *model.ConfigModel {
	m := model.NewConfigModel(model.DefaultRCIErrors())
	m.AddGroup(model.CategorySetting, model.Group{
		Name: "system",
		Elements: []model.Element{
			{Name: "description", Type: model.TypeString},
			{Name: "location", Type: model.TypeString},
		},
	})
	return m
}

// SerialYAML is the Serial model as a definition file.
const SerialYAML = `
rci_errors:
  bad_command: Bad command
  timeout: Timeout
setting:
  - name: serial
    elements:
      - { name: baud, type: uint32 }
      - { name: label, type: string, access: read_only }
    errors:
      overrun: Overrun
`
