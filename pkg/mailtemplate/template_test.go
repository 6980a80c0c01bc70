package mailtemplate_test

import (
	"strings"
	"testing"

	"github.com/DevByAndrei/portfolio/pkg/mailtemplate"
	"github.com/stretchr/testify/assert"
)

func TestRender_ContainsAllParts(t *testing.T) {
	doc := mailtemplate.Render(mailtemplate.Data{
		Name:    "Ana",
		Email:   "ana@example.com",
		Reason:  "Colaboración",
		Message: "Hola, quiero colaborar contigo",
		Glyph:   "🤝",
		SendID:  1700000000000,
	})

	assert.Contains(t, doc, "🤝")
	assert.Contains(t, doc, "Colaboración")
	assert.Contains(t, doc, "Ana")
	assert.Contains(t, doc, `href="mailto:ana@example.com"`)
	assert.Contains(t, doc, "Hola, quiero colaborar contigo")
	assert.Contains(t, doc, "ID: 1700000000000")
	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
}

func TestRender_AvatarInitial(t *testing.T) {
	doc := mailtemplate.Render(mailtemplate.Data{Name: "ana"})
	assert.Contains(t, doc, ">\n                    A\n")

	doc = mailtemplate.Render(mailtemplate.Data{Name: "ñora"})
	assert.Contains(t, doc, "Ñ")

	doc = mailtemplate.Render(mailtemplate.Data{Name: ""})
	assert.Contains(t, doc, "?")
}

func TestRender_PreservesNewlines(t *testing.T) {
	doc := mailtemplate.Render(mailtemplate.Data{
		Message: "línea uno\nlínea dos\nlínea tres",
	})

	assert.Contains(t, doc, "línea uno\nlínea dos\nlínea tres")
	assert.Contains(t, doc, "white-space:pre-wrap")
}

// The renderer must not escape: inputs arrive pre-sanitized and entities
// must survive verbatim.
func TestRender_NoAdditionalEscaping(t *testing.T) {
	doc := mailtemplate.Render(mailtemplate.Data{
		Message: "a &lt;b&gt; c",
	})

	assert.Contains(t, doc, "a &lt;b&gt; c")
	assert.NotContains(t, doc, "&amp;lt;")
}

func TestDataInitial(t *testing.T) {
	assert.Equal(t, "A", mailtemplate.Data{Name: "ana"}.Initial())
	assert.Equal(t, "Ñ", mailtemplate.Data{Name: "ñora"}.Initial())
	assert.Equal(t, "?", mailtemplate.Data{}.Initial())
}
