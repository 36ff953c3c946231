// Package mason builds Mason hypermedia documents: entity fields plus
// namespaces, named controls, errors and embedded items.
package mason

import (
	"encoding/json"

	"github.com/faizan/stadium/schemas"
)

// MediaType is the content type of every document.
const MediaType = "application/vnd.mason+json"

// Namespace names where link relations are documented.
type Namespace struct {
	Name string `json:"name"`
}

// Control is a named affordance. Only Href is mandatory; write controls
// also carry a method, an encoding, a title and usually a schema.
type Control struct {
	Name     string          `json:"-"`
	Href     string          `json:"href"`
	Method   string          `json:"method,omitempty"`
	Encoding string          `json:"encoding,omitempty"`
	Title    string          `json:"title,omitempty"`
	Schema   *schemas.Schema `json:"schema,omitempty"`
}

// ErrorBody is the @error element. Mason allows several messages, we only
// ever emit one.
type ErrorBody struct {
	Message  string   `json:"@message"`
	Messages []string `json:"@messages"`
}

// Document is the in-memory form of a Mason document. It is flattened to
// the wire format by MarshalJSON.
type Document struct {
	Fields     map[string]any
	Namespaces map[string]Namespace
	Controls   []Control
	Error      *ErrorBody
	Items      []*Document
}

// New returns a document holding fields. A nil map is allowed.
func New(fields map[string]any) *Document {
	if fields == nil {
		fields = map[string]any{}
	}
	return &Document{Fields: fields}
}

// NewCollection returns a document with an empty items sequence.
func NewCollection() *Document {
	d := New(nil)
	d.Items = []*Document{}
	return d
}

// AddNamespace registers the namespace prefix ns with the given URI.
func (d *Document) AddNamespace(ns, uri string) *Document {
	if d.Namespaces == nil {
		d.Namespaces = map[string]Namespace{}
	}
	d.Namespaces[ns] = Namespace{Name: uri}
	return d
}

// AddControl adds ctrl under name, replacing any control already named so.
func (d *Document) AddControl(name, href string, ctrl Control) *Document {
	ctrl.Name = name
	ctrl.Href = href
	for i := range d.Controls {
		if d.Controls[i].Name == name {
			d.Controls[i] = ctrl
			return d
		}
	}
	d.Controls = append(d.Controls, ctrl)
	return d
}

// AddLink adds a plain GET control.
func (d *Document) AddLink(name, href string) *Document {
	return d.AddControl(name, href, Control{})
}

// Control returns the control registered under name.
func (d *Document) Control(name string) (Control, bool) {
	for _, c := range d.Controls {
		if c.Name == name {
			return c, true
		}
	}
	return Control{}, false
}

// AddError sets the @error element.
func (d *Document) AddError(title, details string) *Document {
	d.Error = &ErrorBody{Message: title, Messages: []string{details}}
	return d
}

// AddItem appends item to the items sequence.
func (d *Document) AddItem(item *Document) *Document {
	d.Items = append(d.Items, item)
	return d
}

func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Fields)+4)
	for k, v := range d.Fields {
		out[k] = v
	}
	if len(d.Namespaces) > 0 {
		out["@namespaces"] = d.Namespaces
	}
	if len(d.Controls) > 0 {
		controls := make(map[string]Control, len(d.Controls))
		for _, c := range d.Controls {
			controls[c.Name] = c
		}
		out["@controls"] = controls
	}
	if d.Error != nil {
		out["@error"] = d.Error
	}
	if d.Items != nil {
		out["items"] = d.Items
	}
	return json.Marshal(out)
}
