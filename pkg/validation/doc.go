// Package validation checks JSON documents against JSON Schema (draft 2020-12).
//
// Schemas are supplied inline and compiled once, on first use:
//
//	schema := validation.NewSchema("sessions.json", sessionsSchema)
//	if err := schema.ValidateJSON(body); err != nil {
//	    var verr *validation.Error
//	    if errors.As(err, &verr) {
//	        for _, f := range verr.Fields {
//	            fmt.Println(f.Field, f.Message)
//	        }
//	    }
//	}
//
// Syntax errors in the document are returned as wrapped encoding/json errors;
// schema violations are returned as *Error.
package validation
