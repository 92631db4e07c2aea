package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/entities"
)

const customerApprovedSubject = "🎉 Payment Verified — Download Ready"

var adminSubjects = map[entities.OrderEventType]string{
	entities.OrderEventCreated:       "🆕 New Order Received",
	entities.OrderEventProofUploaded: "📸 Payment Screenshot Uploaded",
	entities.OrderEventApproved:      "✔ Order Approved",
	entities.OrderEventRejected:      "❌ Order Rejected",
}

var emailTemplates = htmltemplate.Must(htmltemplate.New("email").Parse(`
{{- define "admin_created" -}}
<h2>New Order Alert</h2>
<p><b>Name:</b> {{.Order.Name}}</p>
<p><b>Email:</b> {{.Order.Email}}</p>
<p><b>Phone:</b> {{.Phone}}</p>
<p><b>Order ID:</b> {{.Order.ID}}</p>
{{- end -}}

{{- define "admin_proof_uploaded" -}}
<h3>Payment Proof Uploaded</h3>
<p><b>Order ID:</b> {{.Order.ID}}</p>
<p><b>Name:</b> {{.Order.Name}}</p>
{{- if .ScreenshotURL}}
<a href="{{.ScreenshotURL}}" target="_blank">View Screenshot</a>
{{- end -}}
{{- end -}}

{{- define "admin_approved" -}}
<p>Order <b>{{.Order.ID}}</b> has been approved.</p>
{{- end -}}

{{- define "admin_rejected" -}}
<p>Order <b>{{.Order.ID}}</b> was rejected.</p>
{{- end -}}

{{- define "customer_approved" -}}
<h2>Hello {{.Order.Name}},</h2>
<p>Your payment has been approved.</p>
<p><b>Order ID:</b> {{.Order.ID}}</p>
<a href="{{.DownloadLink}}"
   style="padding:12px 16px;background:#00ffc6;color:#012;font-weight:bold;border-radius:8px;text-decoration:none;">
  ⬇ Download Product
</a>
{{- end -}}
`))

var chatTemplates = texttemplate.Must(texttemplate.New("chat").Parse(`
{{- define "created" -}}
🆕 *New Order Received*
Name: {{.Order.Name}}
Email: {{.Order.Email}}
Phone: {{.Phone}}
Order ID: {{.Order.ID}}
{{- end -}}

{{- define "proof_uploaded" -}}
📸 *Payment Screenshot Uploaded*
Order ID: {{.Order.ID}}
Name: {{.Order.Name}}
Email: {{.Order.Email}}
{{- end -}}

{{- define "approved" -}}
✔ *Order Approved*
Order ID: {{.Order.ID}}
Customer: {{.Order.Name}}
{{- end -}}

{{- define "rejected" -}}
❌ *Order Rejected*
Order ID: {{.Order.ID}}
Customer: {{.Order.Name}}
{{- end -}}
`))

type templateData struct {
	Order         entities.Order
	Phone         string
	ScreenshotURL string
	DownloadLink  string
}

func (d *Dispatcher) templateData(o entities.Order) templateData {
	data := templateData{
		Order:        o,
		Phone:        "N/A",
		DownloadLink: d.cfg.DownloadLink,
	}
	if o.Phone != nil && *o.Phone != "" {
		data.Phone = *o.Phone
	}
	if o.Screenshot != nil {
		data.ScreenshotURL = d.cfg.PublicBaseURL + *o.Screenshot
	}
	return data
}

func renderEmail(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render email %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderChat(event entities.OrderEventType, data templateData) (string, error) {
	if chatTemplates.Lookup(event.String()) == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}

	var buf bytes.Buffer
	if err := chatTemplates.ExecuteTemplate(&buf, event.String(), data); err != nil {
		return "", fmt.Errorf("render chat %s: %w", event, err)
	}
	return buf.String(), nil
}
