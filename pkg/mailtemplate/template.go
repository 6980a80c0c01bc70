// Package mailtemplate renders the contact-notification email document.
//
// The renderer is pure and performs no escaping of its own: every value in
// Data must already have gone through pkg/sanitize. text/template is used
// instead of html/template precisely so pre-escaped entities are not escaped
// a second time.
package mailtemplate

import (
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

// Data holds the pre-sanitized values interpolated into the document.
type Data struct {
	Name    string
	Email   string
	Reason  string
	Message string
	Glyph   string
	// SendID is a human-traceability marker for the footer, typically a
	// millisecond timestamp. It is not a dedup key.
	SendID int64
}

// Initial returns the avatar initial: the first rune of the name,
// uppercased, or "?" when the name is empty.
func (d Data) Initial() string {
	if d.Name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(d.Name)
	return string(unicode.ToUpper(r))
}

const document = `<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>{{.Reason}}</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #0a0a0a; padding: 20px; color: #fff; margin: 0;">
  <div style="max-width:600px;margin:0 auto;background-color:#1a1a1a;border-radius:12px;overflow:hidden;">

    <div style="background:linear-gradient(135deg,#c93939 0%,#8b1f1f 100%);text-align:center;padding:30px 20px;">
      <div style="font-size:40px;margin-bottom:10px;">{{.Glyph}}</div>
      <h1 style="font-size:26px;margin:0;">{{.Reason}}</h1>
      <p style="color:#f3f3f3;font-size:14px;margin-top:6px;">Has recibido un nuevo mensaje desde tu portfolio</p>
    </div>

    <div style="padding:26px;">

      <div style="margin-bottom:20px;">
        <p style="margin:0 0 8px;color:#aaa;font-size:12px;text-transform:uppercase;letter-spacing:1px;">Remitente</p>
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" border="0">
          <tr>
            <td width="70" align="center" valign="middle">
              <table role="presentation" cellspacing="0" cellpadding="0" border="0" align="center">
                <tr>
                  <td width="56" height="56" align="center" valign="middle"
                    style="background:linear-gradient(135deg,#ef4444 0%,#3b82f6 100%);border-radius:50%;font-weight:bold;font-size:20px;color:white;text-align:center;">
                    {{.Initial}}
                  </td>
                </tr>
              </table>
            </td>
            <td align="left" valign="middle">
              <div style="font-size:18px;font-weight:500;color:#fff;">{{.Name}}</div>
              <a href="mailto:{{.Email}}" style="color:#ef4444;font-size:14px;text-decoration:none;">{{.Email}}</a>
            </td>
          </tr>
        </table>
      </div>

      <div style="margin-bottom:22px;">
        <p style="margin:0 0 8px;color:#aaa;font-size:12px;text-transform:uppercase;letter-spacing:1px;">Mensaje recibido</p>
        <div style="background-color:#0a0a0a;border-left:3px solid #ef4444;padding:18px;border-radius:4px;">
          <p style="color:#eee;font-size:14px;line-height:1.7;white-space:pre-wrap;margin:0;">{{.Message}}</p>
        </div>
      </div>
    </div>

    <div style="text-align:center;padding:16px;border-top:1px solid #2a2a2a;color:#888;font-size:12px;">
      <p style="margin:0;">Enviado desde tu <a href="#" style="color:#ef4444;text-decoration:none;">Portfolio ⚡</a></p>
      <p style="margin:4px 0 0;">© 2025 Andrei — Full Stack Developer</p>
      <p style="margin-top:6px;color:#444;">ID: {{.SendID}}</p>
    </div>
  </div>
</body>
</html>
`

var tmpl = template.Must(template.New("contact-notification").Parse(document))

// Render produces the complete notification document. It cannot fail for
// any Data value: the template only references Data fields.
func Render(d Data) string {
	var b strings.Builder
	// Execute on a Builder never returns a write error, and the template
	// has no failing actions.
	_ = tmpl.Execute(&b, d)
	return b.String()
}
