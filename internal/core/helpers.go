package core

// FormValues renders a row as the string form an admin edit page submits.
func FormValues(def ResourceDefinition, row Row) map[string]string {
	form := make(map[string]string, len(def.Fields))
	for _, f := range def.Fields {
		if f.ReadOnly {
			continue
		}
		form[f.Name] = FormValue(f, row[f.Name])
	}
	return form
}

// FormValue renders a single value for an input element.
func FormValue(spec FieldSpec, v any) string {
	if spec.Type == FieldBool {
		if b, ok := v.(bool); ok && b {
			return "true"
		}
		return "false"
	}
	return FormatValue(spec, v)
}

// applyDefaults sets blank fields that declare a default.
func applyDefaults(def ResourceDefinition, values Row) {
	for _, f := range def.Fields {
		if f.Default == "" || values[f.Name] != nil {
			continue
		}
		if v, err := ParseValue(f, f.Default); err == nil {
			values[f.Name] = v
		}
	}
}
