package valueobjects

// Template selects the camera treatment for a product video.
type Template string

const (
	TemplateShowcase    Template = "showcase"
	TemplateBeforeAfter Template = "before_after"
	TemplateRotation    Template = "rotation"
)

var templatePrompts = map[Template]string{
	TemplateShowcase: "Smooth product showcase with gentle camera movement, professional lighting, " +
		"clean background transitions between each product angle",
	TemplateBeforeAfter: "Dramatic before and after transformation, split screen transition effect, " +
		"revealing the improved result with satisfying motion",
	TemplateRotation: "Smooth 360 degree rotation effect around the product, seamless transitions " +
		"between different angles, professional turntable-style presentation",
}

func ParseTemplate(s string) (Template, bool) {
	t := Template(s)
	_, ok := templatePrompts[t]
	return t, ok
}

func (t Template) String() string {
	return string(t)
}

func (t Template) IsValid() bool {
	_, ok := templatePrompts[t]
	return ok
}

// Prompt returns the base generation prompt for the template.
func (t Template) Prompt() string {
	return templatePrompts[t]
}
