package templates

import (
	"errors"
	"fmt"
	"sort"
)

var ErrTemplateNotFound = errors.New("template not found")

// Registry holds named templates. Rendering is pure: the same template and
// data always produce the same output, and no HTML escaping is applied —
// template data is trusted operator content.
type Registry struct {
	templates map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]string)}

	r.Register(TemplateWelcome, welcomeTemplate)
	r.Register(TemplateVerification, verificationTemplate)
	r.Register(TemplatePasswordReset, passwordResetTemplate)
	r.Register(TemplateProjectAssignment, projectAssignmentTemplate)
	r.Register(TemplateStatusChange, statusChangeTemplate)
	r.Register(TemplateDeadlineReminder, deadlineReminderTemplate)

	return r
}

func (r *Registry) Register(name, body string) {
	r.templates[name] = body
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Render(name string, data map[string]interface{}) (string, error) {
	body, ok := r.templates[name]

	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	return renderFragment(body, data), nil
}
