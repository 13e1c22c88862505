package template

// TemplateRenderer renders a named template with a context keyed by variable
// name.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any) (string, error)
}
