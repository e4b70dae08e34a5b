// Package validation checks inputs that cross a trust boundary: IPC
// arguments from the webview and the embedded application manifest.
//
// Struct tags use go-playground/validator plus two shell-specific tags:
//
//	type loadInput struct {
//	    DB string `json:"db" validate:"required,dburl"`
//	}
//	err := validation.Validate(in)
//
// Programmatic checks collect field errors:
//
//	v := validation.New()
//	v.Required("query", q).Range("level", level, 1, 5)
//	err := v.Validate()
//
// Both forms return *errors.AppError with code INVALID_INPUT.
package validation
