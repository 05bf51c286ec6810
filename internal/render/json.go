package render

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/classmeta/classfile"
)

// JSONEncoder renders a decoded TypeDefinition as indented JSON, using a
// flattened jsonClass tree rather than marshaling classfile's internal
// sum types directly.
type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(t *classfile.TypeDefinition) error {
	data := buildClassData(t)
	text, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

type jsonClass struct {
	Name       string       `json:"name"`
	SimpleName string       `json:"simpleName"`
	Package    string       `json:"package"`
	SuperClass string       `json:"superClass,omitempty"`
	Interfaces []string     `json:"interfaces,omitempty"`
	Kind       string       `json:"kind"`
	Modifiers  []string     `json:"modifiers,omitempty"`
	Version    jsonVersion  `json:"version"`
	Fields     []jsonField  `json:"fields,omitempty"`
	Methods    []jsonMethod `json:"methods,omitempty"`
}

type jsonVersion struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
}

type jsonField struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Modifiers []string `json:"modifiers,omitempty"`
}

type jsonMethod struct {
	Name       string   `json:"name"`
	Descriptor string   `json:"descriptor"`
	Signature  string   `json:"signature,omitempty"`
	Modifiers  []string `json:"modifiers,omitempty"`
}

func buildClassData(t *classfile.TypeDefinition) jsonClass {
	data := jsonClass{
		Name:       t.InternalName,
		SimpleName: t.SimpleName,
		Package:    t.Package,
		SuperClass: t.SuperName,
		Interfaces: t.InterfaceNames,
		Kind:       classKind(t),
		Version:    jsonVersion{Major: t.MajorVersion, Minor: t.MinorVersion},
	}
	if mods := classModifiersStr(t); mods != "-" {
		data.Modifiers = splitNonEmpty(mods)
	}
	for _, f := range t.Fields {
		typeStr := f.Descriptor
		if desc, err := f.ParsedDescriptor(); err == nil {
			typeStr = desc.InternalName()
		}
		jf := jsonField{Name: f.Name, Type: typeStr}
		if mods := fieldModifiersStr(f); mods != "-" {
			jf.Modifiers = splitNonEmpty(mods)
		}
		data.Fields = append(data.Fields, jf)
	}
	for _, m := range t.Methods {
		jm := jsonMethod{Name: m.Name, Descriptor: m.Descriptor}
		if m.Signature != nil {
			jm.Signature = m.Signature.ReturnType.InternalName()
		}
		if mods := methodModifiersStr(m); mods != "-" {
			jm.Modifiers = splitNonEmpty(mods)
		}
		data.Methods = append(data.Methods, jm)
	}
	return data
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
