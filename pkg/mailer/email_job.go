package mailer

import "github.com/oksasatya/go-devconnector/pkg/mailer/templates"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (+Data) or Subject/Text/HTML is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// NewWelcomeJob builds the job published right after a successful registration.
func NewWelcomeJob(name, email string) EmailJob {
	return EmailJob{
		To:       email,
		Template: templates.Welcome,
		Data:     map[string]any{"Name": name, "Email": email},
	}
}

// JobType labels the message so the queue can be inspected without decoding bodies.
func (j EmailJob) JobType() string {
	if j.Template == "" {
		return "email"
	}
	return "email." + j.Template
}

// Resolve renders the template, if any, into subject/text/html.
func (j EmailJob) Resolve(defaults templates.Defaults) (subject, text, html string, err error) {
	if j.Template == "" {
		return j.Subject, j.Text, j.HTML, nil
	}
	return templates.Render(j.Template, defaults.Merge(j.Data))
}
