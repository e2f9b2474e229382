package rcigen

import (
	"fmt"

	"github.com/rci-tools/rcigen/pkg/model"
)

// Symbol is a C identifier a plan emits at file scope, with the part of the
// model it was derived from.
type Symbol struct {
	Name  string
	Owner string
}

// Symbols lists every identifier the plan's artifacts declare: error
// enumerators and offset defines, id enumerations, typedef names, callbacks
// and tables. Names built from different parts of the model must not meet.
func (p *Plan) Symbols() []Symbol {
	var syms []Symbol
	add := func(name, owner string) {
		syms = append(syms, Symbol{Name: name, Owner: owner})
	}
	prefix := p.Options.Prefix

	add(rciErrorEnum+"_OFFSET", "rci_errors offset")
	for _, e := range p.Model.RCIErrors {
		add(rciErrorEnum+"_"+e.Key, fmt.Sprintf("rci error %q", e.Key))
	}
	add(rciErrorEnum+"_COUNT", "rci_errors count")
	add(prefix+rciErrorEnum+"_id_t", "rci_errors enumeration")

	add(globalErrorEnum+"_OFFSET", "global_errors offset")
	for _, e := range p.Model.GlobalErrors {
		add(globalErrorEnum+"_"+e.Key, fmt.Sprintf("global error %q", e.Key))
	}
	if p.Split() {
		add(GlobalCountIndexSymbol, "global_errors count index")
	}
	add(GlobalCountSymbol, "global_errors count")
	add(prefix+globalErrorEnum+"_id_t", "global_errors enumeration")

	if p.Pool != nil {
		add(PoolSymbol, "string pool")
		add(rciErrorsSymbol, "rci error table")
		for _, e := range p.Model.RCIErrors {
			add(RCIErrorSymbol(e.Key), fmt.Sprintf("description of rci error %q", e.Key))
		}
		for _, kind := range model.AllCategories() {
			for _, g := range p.Model.Groups(kind) {
				for _, e := range g.Errors {
					add(GroupErrorSymbol(kind, g.Name, e.Key),
						fmt.Sprintf("description of %s group %q error %q", kind, g.Name, e.Key))
				}
			}
		}
		for _, e := range p.Model.GlobalErrors {
			add(GlobalErrorSymbol(e.Key), fmt.Sprintf("description of global error %q", e.Key))
		}
	}

	add(prefix+"rci_session_start_cb", "session start callback")
	add(prefix+"rci_session_end_cb", "session end callback")
	add(groupTableSymbol, "group table")
	add(descDataSymbol, "descriptor data")

	for _, kind := range model.AllCategories() {
		groups := p.Model.Groups(kind)
		if len(groups) == 0 {
			continue
		}
		for _, g := range groups {
			where := fmt.Sprintf("%s group %q", kind, g.Name)
			stem := idStem(kind, g.Name)

			for _, e := range g.Elements {
				el := fmt.Sprintf("%s element %q", where, e.Name)
				if e.Type == model.TypeEnum {
					vstem := stem + "_" + e.Name
					for _, v := range e.Values {
						if v.Name != "" {
							add(vstem+"_"+model.SanitizeIdentifier(v.Name), fmt.Sprintf("%s value %q", el, v.Name))
						}
					}
					add(vstem+"_COUNT", el+" value count")
					add(prefix+vstem+"_id_t", el+" value enumeration")
				}
				add(stem+"_"+e.Name, el)
				add(GetCallback(prefix, kind, g.Name, e.Name), el+" get callback")
				add(SetCallback(prefix, kind, g.Name, e.Name), el+" set callback")
			}
			add(stem+"_COUNT", where+" element count")
			add(prefix+stem+"_id_t", where+" element enumeration")

			if len(g.Errors) > 0 {
				base := groupErrorBase(kind, g.Name)
				for _, e := range p.Model.RCIErrors {
					add(base+"_"+e.Key, fmt.Sprintf("%s rci error %q", where, e.Key))
				}
				for _, e := range p.Model.GlobalErrors {
					add(base+"_"+e.Key, fmt.Sprintf("%s global error %q", where, e.Key))
				}
				for _, e := range g.Errors {
					add(base+"_"+e.Key, fmt.Sprintf("%s error %q", where, e.Key))
				}
				add(base+"_COUNT", where+" error count")
				add(prefix+base+"_id_t", where+" error enumeration")
			}

			add(callbackSymbol(prefix, kind, g.Name, "start"), where+" start callback")
			add(callbackSymbol(prefix, kind, g.Name, "end"), where+" end callback")
			if len(g.Elements) > 0 {
				add(elementsSymbol(prefix, kind, g.Name), where+" element table")
			}
			if hasErrorArray(p, g) {
				add(errorsSymbol(prefix, kind, g.Name), where+" error table")
			}
			add(categoryStem(kind)+"_"+g.Name, where)
		}
		add(categoryStem(kind)+"_COUNT", kind.String()+" group count")
		add(prefix+categoryStem(kind)+"_id_t", kind.String()+" group enumeration")
		add(groupsSymbol(prefix, kind), kind.String()+" group table")
	}
	return syms
}

// checkSymbols rejects a plan in which two parts of the model map to the same
// C identifier, such as keys differing only in case or names whose
// underscore-joined forms meet.
func checkSymbols(p *Plan) error {
	seen := make(map[string]string)
	for _, s := range p.Symbols() {
		if prev, ok := seen[s.Name]; ok {
			return fmt.Errorf("%w: symbol %s is emitted for both %s and %s",
				model.ErrModelIntegrity, s.Name, prev, s.Owner)
		}
		seen[s.Name] = s.Owner
	}
	return nil
}
