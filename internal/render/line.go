// Package render formats a decoded classfile.TypeDefinition for display
// as either tab-separated lines or indented JSON.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/classmeta/classfile"
)

// LineEncoder writes a tab-separated, one-record-per-line rendering: a
// header line for the class itself, then one line per field and method.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(t *classfile.TypeDefinition) error {
	text, err := e.marshalText(t)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) marshalText(t *classfile.TypeDefinition) ([]byte, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\t%s\t%s\n", classKind(t), t.InternalName, classModifiersStr(t))

	for _, f := range t.Fields {
		desc, err := f.ParsedDescriptor()
		typeStr := f.Descriptor
		if err == nil {
			typeStr = desc.InternalName()
		}
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\n", f.Name, typeStr, fieldModifiersStr(f))
	}

	for _, m := range t.Methods {
		md, err := m.ParsedDescriptor()
		sig := m.Descriptor
		if err == nil {
			sig = md.String()
		}
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\n", m.Name, sig, methodModifiersStr(m))
	}

	return []byte(sb.String()), nil
}

func classKind(t *classfile.TypeDefinition) string {
	switch {
	case t.IsAnnotation():
		return "annotation"
	case t.IsEnum():
		return "enum"
	case t.IsModule():
		return "module"
	case t.IsInterface():
		return "interface"
	default:
		return "class"
	}
}

func classModifiersStr(t *classfile.TypeDefinition) string {
	var mods []string
	switch {
	case t.AccessFlags.IsPublic():
		mods = append(mods, "public")
	case t.AccessFlags.IsPrivate():
		mods = append(mods, "private")
	case t.AccessFlags.IsProtected():
		mods = append(mods, "protected")
	}
	if t.AccessFlags.IsFinal() {
		mods = append(mods, "final")
	}
	if t.AccessFlags.IsAbstract() {
		mods = append(mods, "abstract")
	}
	if t.AccessFlags.IsSynthetic() {
		mods = append(mods, "synthetic")
	}
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}

func fieldModifiersStr(f *classfile.FieldInfoRaw) string {
	var mods []string
	if f.IsStatic() {
		mods = append(mods, "static")
	}
	if f.IsFinal() {
		mods = append(mods, "final")
	}
	if f.IsVolatile() {
		mods = append(mods, "volatile")
	}
	if f.IsTransient() {
		mods = append(mods, "transient")
	}
	if f.IsSynthetic() {
		mods = append(mods, "synthetic")
	}
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}

func methodModifiersStr(m *classfile.MethodInfoRaw) string {
	var mods []string
	if m.IsStatic() {
		mods = append(mods, "static")
	}
	if m.IsFinal() {
		mods = append(mods, "final")
	}
	if m.IsAbstract() {
		mods = append(mods, "abstract")
	}
	if m.IsSynchronized() {
		mods = append(mods, "synchronized")
	}
	if m.IsNative() {
		mods = append(mods, "native")
	}
	if m.IsBridge() {
		mods = append(mods, "bridge")
	}
	if m.IsVarargs() {
		mods = append(mods, "varargs")
	}
	if m.IsSynthetic() {
		mods = append(mods, "synthetic")
	}
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}
