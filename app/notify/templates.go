package notify

import (
	"fmt"
	"strings"
	"text/template"
)

type messageTemplate struct {
	subject string
	body    *template.Template
}

var templates = map[string]messageTemplate{
	TemplateNewCommentPending: {
		subject: "New Comment Awaiting Approval: {{.PostTitle}}",
		body: mustParse(TemplateNewCommentPending, `A new comment on "{{.PostTitle}}" is awaiting approval.

Author: {{.Author}}

{{.Content}}

Review it here: {{.ModerationURL}}
`),
	},
	TemplateNewReviewPending: {
		subject: "New Review Awaiting Approval: {{.PostTitle}}",
		body: mustParse(TemplateNewReviewPending, `A new {{.Rating}}-star review of "{{.PostTitle}}" is awaiting approval.

Author: {{.Author}}
Title: {{.Title}}

{{.Content}}

Review it here: {{.ModerationURL}}
`),
	},
	TemplateCommentApproved: {
		subject: "Your comment has been approved",
		body: mustParse(TemplateCommentApproved, `Good news — your comment on "{{.PostTitle}}" has been approved and is now live.

Read it here: {{.PostURL}}
`),
	},
	TemplateReviewApproved: {
		subject: "Your review has been approved",
		body: mustParse(TemplateReviewApproved, `Good news — your review of "{{.PostTitle}}" has been approved and is now live.

Read it here: {{.PostURL}}
`),
	},
	TemplateContactReceived: {
		subject: "Contact form: {{.Subject}}",
		body: mustParse(TemplateContactReceived, `{{.Name}} <{{.Email}}> wrote:

{{.Message}}

Phone: {{.Phone}}
`),
	},
	TemplateBookingReceived: {
		subject: "Booking request {{.Reference}}: {{.RoomType}}",
		body: mustParse(TemplateBookingReceived, `New booking request {{.Reference}}.

Guest: {{.FirstName}} {{.LastName}} <{{.Email}}>, {{.Phone}}
Room: {{.RoomType}}, {{.CheckIn}} to {{.CheckOut}}
Party: {{.Adults}} adults, {{.Children}} children

{{.SpecialRequests}}
`),
	},
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Option("missingkey=zero").Parse(text))
}

// Render produces the subject line and body for a template key. Unknown
// keys are an error so a typo cannot silently drop a notification class.
func Render(templateKey string, data map[string]any) (string, string, error) {
	tmpl, ok := templates[templateKey]
	if !ok {
		return "", "", fmt.Errorf("unknown notification template %q", templateKey)
	}

	var subject strings.Builder
	subjTmpl, err := template.New("subject").Option("missingkey=zero").Parse(tmpl.subject)
	if err != nil {
		return "", "", err
	}
	if err := subjTmpl.Execute(&subject, data); err != nil {
		return "", "", err
	}

	var body strings.Builder
	if err := tmpl.body.Execute(&body, data); err != nil {
		return "", "", err
	}
	return subject.String(), body.String(), nil
}
