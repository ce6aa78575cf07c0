package model

// TemplateID names one of the bundled LaTeX templates.
type TemplateID string

const (
	Template1 TemplateID = "template1"
	Template2 TemplateID = "template2"
	Template3 TemplateID = "template3"
	Template4 TemplateID = "template4"

	DefaultTemplate = Template1
)

// Templates lists the supported ids in display order.
var Templates = []TemplateID{Template1, Template2, Template3, Template4}

func (t TemplateID) Valid() bool {
	for _, id := range Templates {
		if id == t {
			return true
		}
	}
	return false
}

// ResolveTemplate maps any identifier onto a supported one. Unknown or empty
// ids resolve to DefaultTemplate and report coerced=true; they are never an
// error.
func ResolveTemplate(s string) (id TemplateID, coerced bool) {
	id = TemplateID(s)
	if id.Valid() {
		return id, false
	}
	return DefaultTemplate, true
}
