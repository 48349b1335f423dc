package templates

import (
	"strings"

	"github.com/JonMunkholm/nonprofit/internal/core"
)

func formError(h *html, state FormState) {
	if state.Message == "" {
		return
	}
	h.raw(`<div class="flash error" role="alert">`)
	h.text(state.Message)
	h.raw("</div>")
}

func fieldOpen(h *html, name, label string) {
	h.raw(`<div class="field"><label`)
	h.attr("for", name)
	h.raw(">")
	h.text(label)
	h.raw("</label>")
}

func fieldClose(h *html, state FormState, name, help string) {
	if help != "" {
		h.raw("<small>")
		h.text(help)
		h.raw("</small>")
	}
	if msg := state.Error(name); msg != "" {
		h.raw(`<div class="error">`)
		h.text(msg)
		h.raw("</div>")
	}
	h.raw("</div>")
}

func input(h *html, state FormState, name, label, kind string, required bool) {
	fieldOpen(h, name, label)
	h.raw("<input")
	h.attr("type", kind)
	h.attr("id", name)
	h.attr("name", name)
	h.attr("value", state.Value(name))
	if kind == "number" {
		h.raw(` step="any"`)
	}
	if required {
		h.raw(" required")
	}
	h.raw(">")
	fieldClose(h, state, name, "")
}

func textarea(h *html, state FormState, name, label string, required bool) {
	fieldOpen(h, name, label)
	h.raw(`<textarea rows="6"`)
	h.attr("id", name)
	h.attr("name", name)
	if required {
		h.raw(" required")
	}
	h.raw(">")
	h.text(state.Value(name))
	h.raw("</textarea>")
	fieldClose(h, state, name, "")
}

func selectField(h *html, state FormState, name, label string, values, labels []string) {
	fieldOpen(h, name, label)
	h.raw("<select")
	h.attr("id", name)
	h.attr("name", name)
	h.raw(">")
	current := state.Value(name)
	for i, v := range values {
		h.raw("<option")
		h.attr("value", v)
		if v == current {
			h.raw(" selected")
		}
		h.raw(">")
		h.text(labels[i])
		h.raw("</option>")
	}
	h.raw("</select>")
	fieldClose(h, state, name, "")
}

// fieldInput renders the admin input for spec.
func fieldInput(h *html, spec core.FieldSpec, state FormState) {
	label := spec.Label
	if spec.Required {
		label += " *"
	}

	switch spec.Type {
	case core.FieldLongText:
		fieldOpen(h, spec.Name, label)
		h.raw(`<textarea rows="8"`)
		h.attr("id", spec.Name)
		h.attr("name", spec.Name)
		h.raw(">")
		h.text(state.Value(spec.Name))
		h.raw("</textarea>")

	case core.FieldEnum:
		fieldOpen(h, spec.Name, label)
		h.raw("<select")
		h.attr("id", spec.Name)
		h.attr("name", spec.Name)
		h.raw(`><option value=""></option>`)
		current := state.Value(spec.Name)
		for _, v := range spec.EnumValues {
			h.raw("<option")
			h.attr("value", v)
			if v == current {
				h.raw(" selected")
			}
			h.raw(">")
			h.text(strings.ReplaceAll(v, "_", " "))
			h.raw("</option>")
		}
		h.raw("</select>")

	case core.FieldBool:
		// The hidden input submits false when the box is unchecked.
		h.raw(`<div class="field"><input type="hidden" value="false"`)
		h.attr("name", spec.Name)
		h.raw(`><label><input type="checkbox" value="true"`)
		h.attr("name", spec.Name)
		if v, _ := core.ParseBool(state.Value(spec.Name)); v {
			h.raw(" checked")
		}
		h.raw("> ")
		h.text(spec.Label)
		h.raw("</label>")

	default:
		fieldOpen(h, spec.Name, label)
		h.raw("<input")
		h.attr("type", inputType(spec.Type))
		h.attr("id", spec.Name)
		h.attr("name", spec.Name)
		h.attr("value", state.Value(spec.Name))
		if spec.MaxLength > 0 && (spec.Type == core.FieldText || spec.Type == core.FieldEmail) {
			h.rawf(` maxlength="%d"`, spec.MaxLength)
		}
		if spec.Type == core.FieldNumeric {
			h.raw(` step="0.01"`)
		}
		h.raw(">")
	}

	fieldClose(h, state, spec.Name, spec.Help)
}

func inputType(t core.FieldType) string {
	switch t {
	case core.FieldEmail:
		return "email"
	case core.FieldURL:
		return "url"
	case core.FieldDate:
		return "datetime-local"
	case core.FieldNumeric, core.FieldInteger:
		return "number"
	default:
		return "text"
	}
}
