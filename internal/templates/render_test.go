package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReplacesScalars(t *testing.T) {
	r := NewRegistry()
	r.Register("greeting", "Hello {{name}}, you have {{count}} tasks.")

	out, err := r.Render("greeting", map[string]interface{}{
		"name":  "Alice",
		"count": 3,
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello Alice, you have 3 tasks.", out)
}

func TestRenderMissingAndFalsyKeysAreEmpty(t *testing.T) {
	r := NewRegistry()
	r.Register("t", "[{{missing}}][{{empty}}][{{zero}}][{{off}}][{{nothing}}]")

	out, err := r.Render("t", map[string]interface{}{
		"empty":   "",
		"zero":    0,
		"off":     false,
		"nothing": nil,
	})

	require.NoError(t, err)
	assert.Equal(t, "[][][][][]", out)
}

func TestRenderIsDeterministic(t *testing.T) {
	r := NewRegistry()

	data := map[string]interface{}{
		"name":     "Bob",
		"email":    "bob@example.com",
		"loginUrl": "https://app.example.com/login",
	}

	first, err := r.Render(TemplateWelcome, data)
	require.NoError(t, err)

	second, err := r.Render(TemplateWelcome, data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "Bob")
	assert.Contains(t, first, "bob@example.com")
}

func TestRenderSectionRepeatsRows(t *testing.T) {
	r := NewRegistry()
	r.Register("list", "{{#items}}<li>{{name}}</li>{{/items}}")

	out, err := r.Render("list", map[string]interface{}{
		"items": []map[string]interface{}{
			{"name": "one"},
			{"name": "two"},
			{"name": "three"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "<li>one</li><li>two</li><li>three</li>", out)
}

func TestRenderSectionConditional(t *testing.T) {
	r := NewRegistry()
	r.Register("flag", "a{{#show}}visible{{/show}}b")

	out, err := r.Render("flag", map[string]interface{}{"show": true})
	require.NoError(t, err)
	assert.Equal(t, "avisibleb", out)

	out, err = r.Render("flag", map[string]interface{}{"show": false})
	require.NoError(t, err)
	assert.Equal(t, "ab", out)

	// Missing key behaves like false.
	out, err = r.Render("flag", map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, "ab", out)
}

func TestRenderNestedSections(t *testing.T) {
	r := NewRegistry()
	r.Register("nested", "{{#projects}}<div{{#isUrgent}} class=\"urgent\"{{/isUrgent}}>{{name}}</div>{{/projects}}")

	out, err := r.Render("nested", map[string]interface{}{
		"projects": []map[string]interface{}{
			{"name": "calm", "isUrgent": false},
			{"name": "hot", "isUrgent": true},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "<div>calm</div><div class=\"urgent\">hot</div>", out)
}

func TestRenderUnknownTemplate(t *testing.T) {
	r := NewRegistry()

	_, err := r.Render("does-not-exist", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestBuiltinTemplatesRegistered(t *testing.T) {
	r := NewRegistry()

	names := r.Names()

	for _, name := range []string{
		TemplateWelcome,
		TemplateVerification,
		TemplatePasswordReset,
		TemplateProjectAssignment,
		TemplateStatusChange,
		TemplateDeadlineReminder,
	} {
		assert.Contains(t, names, name)
	}
}

func TestDeadlineReminderTemplateRendersProjects(t *testing.T) {
	r := NewRegistry()

	out, err := r.Render(TemplateDeadlineReminder, map[string]interface{}{
		"userName": "Carol",
		"projects": []map[string]interface{}{
			{"name": "Launch", "deadline": "2025-06-01 12:00", "timeLeft": "1 day", "status": "in_progress", "isUrgent": true},
			{"name": "Audit", "deadline": "2025-06-03 09:00", "timeLeft": "3 days", "status": "not_started", "isUrgent": false},
		},
		"dashboardUrl": "https://app.example.com/dashboard",
	})

	require.NoError(t, err)
	assert.Contains(t, out, "Dear Carol")
	assert.Contains(t, out, "Launch")
	assert.Contains(t, out, "Audit")
	assert.Contains(t, out, `class="reminder urgent"`)
	assert.Equal(t, 2, strings.Count(out, `<div class="reminder`))
	assert.NotContains(t, out, "{{")
}
