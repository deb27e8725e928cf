package notify

import (
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Run("pending comment", func(t *testing.T) {
		subject, body, err := Render(TemplateNewCommentPending, map[string]any{
			"PostTitle":     "Cabana Season",
			"Author":        "Jamie",
			"Content":       "Lovely place",
			"ModerationURL": "https://example.test/admin/comments/7",
		})
		require.NoError(t, err)
		assert.Equal(t, "New Comment Awaiting Approval: Cabana Season", subject)
		assert.Contains(t, body, "Jamie")
		assert.Contains(t, body, "https://example.test/admin/comments/7")
	})

	t.Run("approved review", func(t *testing.T) {
		subject, body, err := Render(TemplateReviewApproved, map[string]any{
			"PostTitle": "Cabana Season",
			"PostURL":   "https://example.test/blog/2025/07/04/cabana-season",
		})
		require.NoError(t, err)
		assert.Equal(t, "Your review has been approved", subject)
		assert.Contains(t, body, "/blog/2025/07/04/cabana-season")
	})

	t.Run("unknown template", func(t *testing.T) {
		_, _, err := Render("no-such-template", nil)
		assert.Error(t, err)
	})
}

func TestSMTPNotifier(t *testing.T) {
	t.Run("builds a plain text message", func(t *testing.T) {
		var gotTo []string
		var gotMsg string

		n := NewSMTPNotifier("mail.example.test:587", "resort@example.test", nil)
		n.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			assert.Equal(t, "mail.example.test:587", addr)
			assert.Equal(t, "resort@example.test", from)
			gotTo = to
			gotMsg = string(msg)
			return nil
		}

		err := n.Send(TemplateCommentApproved, "guest@example.test", map[string]any{
			"PostTitle": "Cabana Season",
			"PostURL":   "https://example.test/p",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"guest@example.test"}, gotTo)
		assert.Contains(t, gotMsg, "Subject: Your comment has been approved")
		assert.Contains(t, gotMsg, "To: guest@example.test")
	})

	t.Run("missing recipient", func(t *testing.T) {
		n := NewSMTPNotifier("mail.example.test:587", "resort@example.test", nil)
		assert.Error(t, n.Send(TemplateCommentApproved, "", nil))
	})
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	require.NoError(t, rec.Send(TemplateCommentApproved, "a@example.test", nil))
	require.NoError(t, rec.Send(TemplateNewCommentPending, "mod@example.test", nil))

	assert.Len(t, rec.Sent, 2)
	assert.Len(t, rec.ByTemplate(TemplateCommentApproved), 1)
	assert.Empty(t, rec.ByTemplate(TemplateReviewApproved))

	rec.Fail = true
	assert.Error(t, rec.Send(TemplateCommentApproved, "a@example.test", nil))
}
