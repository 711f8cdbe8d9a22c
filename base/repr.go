/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package base

import (
	"fmt"
	"sort"
	"strings"

	"dirpx.dev/parx"
	"dirpx.dev/parx/apis"
	"dirpx.dev/parx/config"
)

// String renders the object as a constructor-call display. The "display"
// config key selects the layout: "text" is a single line
//
//	Widget(color=blue, size=3)
//
// and "tree" indents one parameter per line, recursing into nested
// parametric parameters. With "print_changed_only" set, parameters equal to
// their class defaults are omitted. String never panics; a broken object
// renders as a diagnostic placeholder instead.
func (b *Base) String() (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("<unrenderable parametric object: %v>", r)
		}
	}()
	if b == nil || b.self == nil {
		return "<unbound parametric object>"
	}
	cfg := b.Config()
	display, _ := cfg[apis.ConfigKeyDisplay].(string)
	changedOnly, _ := cfg[apis.ConfigKeyPrintChangedOnly].(bool)

	items, err := b.reprItems(changedOnly)
	if err != nil {
		return fmt.Sprintf("%s(<unreadable params: %v>)", b.displayName(), err)
	}
	if display == config.DisplayTree {
		var sb strings.Builder
		writeTree(&sb, b.displayName(), items, changedOnly, 0)
		return sb.String()
	}
	return renderText(b.displayName(), items, changedOnly)
}

// displayName returns the name to render: the Namer hook if the concrete
// type implements it, the class name otherwise.
func (b *Base) displayName() string {
	if n, ok := b.self.(apis.Namer); ok {
		if name := n.EntityName(); name != "" {
			return name
		}
	}
	if b.class != nil {
		return b.class.Name
	}
	return "Object"
}

// reprItem is one parameter to render, in sorted-name order.
type reprItem struct {
	name  string
	value any
}

// reprItems collects the shallow parameters to display, dropping
// default-valued ones when changedOnly is set.
func (b *Base) reprItems(changedOnly bool) ([]reprItem, error) {
	params, err := b.Params(false)
	if err != nil {
		return nil, err
	}
	var defaults apis.Params
	if changedOnly {
		// Defaults are best-effort: without a factory every parameter
		// counts as changed.
		defaults, _ = b.ParamDefaults()
	}
	items := make([]reprItem, 0, len(params))
	for name, v := range params {
		if defaults != nil {
			if dv, ok := defaults[name]; ok && parx.DeepEqual(v, dv) {
				continue
			}
		}
		items = append(items, reprItem{name: name, value: v})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].name < items[j].name })
	return items, nil
}

// renderText renders the single-line layout, nesting recursively.
func renderText(name string, items []reprItem, changedOnly bool) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.name + "=" + renderValue(it.value, changedOnly)
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// writeTree renders the indented layout, one parameter per line.
func writeTree(sb *strings.Builder, name string, items []reprItem, changedOnly bool, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent)
	sb.WriteString(name)
	sb.WriteString("(")
	if len(items) == 0 {
		sb.WriteString(")")
		return
	}
	for i, it := range items {
		sb.WriteString("\n")
		sb.WriteString(indent)
		sb.WriteString("  ")
		sb.WriteString(it.name)
		sb.WriteString("=")
		if nested, sub, ok := nestedItems(it.value, changedOnly); ok {
			trimmed := &strings.Builder{}
			writeTree(trimmed, nested, sub, changedOnly, depth+1)
			sb.WriteString(strings.TrimLeft(trimmed.String(), " "))
		} else {
			sb.WriteString(renderValue(it.value, changedOnly))
		}
		if i < len(items)-1 {
			sb.WriteString(",")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(indent)
	sb.WriteString(")")
}

// nestedItems extracts the display name and items of a nested parametric
// value, when v is one.
func nestedItems(v any, changedOnly bool) (string, []reprItem, bool) {
	o, ok := asComponent(v)
	if !ok {
		return "", nil, false
	}
	ba, ok := o.(interface {
		reprItems(bool) ([]reprItem, error)
		displayName() string
	})
	if !ok {
		return "", nil, false
	}
	items, err := ba.reprItems(changedOnly)
	if err != nil {
		return "", nil, false
	}
	return ba.displayName(), items, true
}

// renderValue formats a single parameter value.
func renderValue(v any, changedOnly bool) string {
	if o, ok := asComponent(v); ok {
		if name, items, ok := nestedItems(v, changedOnly); ok {
			return renderText(name, items, changedOnly)
		}
		return o.Class().Name + "(...)"
	}
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
