package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "hc-form"
	ClassSection ChromeClass = "hc-section"
	ClassRow     ChromeClass = "hc-row"
	ClassInvalid ChromeClass = "hc-invalid"
	ClassActions ChromeClass = "hc-actions"
	ClassErrors  ChromeClass = "hc-errors"
	ClassOutput  ChromeClass = "hc-output"
)

// classNames is exposed to templates as "classes".
func classNames() map[string]string {
	return map[string]string{
		"form":    string(ClassForm),
		"section": string(ClassSection),
		"row":     string(ClassRow),
		"invalid": string(ClassInvalid),
		"actions": string(ClassActions),
		"errors":  string(ClassErrors),
		"output":  string(ClassOutput),
	}
}
