package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"driftwood/app/auth"
	"driftwood/app/models"
	"driftwood/app/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewBody() map[string]interface{} {
	return map[string]interface{}{
		"submitterId":    "guest-1",
		"submitterEmail": "guest@example.com",
		"author":         "Guest",
		"title":          "Worth every peso",
		"content":        "The cabana staff were wonderful.",
		"rating":         5,
		"stayDate":       "2026-04-10T00:00:00Z",
	}
}

func TestReviewCreateEndpoint(t *testing.T) {
	t.Run("json submission starts pending", func(t *testing.T) {
		h := newHarness(t, auth.StaticGrants{})

		rec := h.postJSON(fmt.Sprintf("/api/posts/%d/reviews", h.post.ID), reviewBody())
		require.Equal(t, http.StatusCreated, rec.Code)

		var created models.Review
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.False(t, created.Approved)
		assert.Len(t, h.recorder.ByTemplate(notify.TemplateNewReviewPending), 1)
	})

	t.Run("out of range rating returns 400", func(t *testing.T) {
		h := newHarness(t, auth.StaticGrants{})

		body := reviewBody()
		body["rating"] = 9
		rec := h.postJSON(fmt.Sprintf("/api/posts/%d/reviews", h.post.ID), body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing stay date returns 400", func(t *testing.T) {
		h := newHarness(t, auth.StaticGrants{})

		body := reviewBody()
		delete(body, "stayDate")
		rec := h.postJSON(fmt.Sprintf("/api/posts/%d/reviews", h.post.ID), body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("multipart submission keeps at most five images", func(t *testing.T) {
		h := newHarness(t, auth.StaticGrants{})

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fields := map[string]string{
			"author":       "Guest",
			"title":        "Worth every peso",
			"content":      "The cabana staff were wonderful.",
			"email":        "guest@example.com",
			"submitter_id": "guest-1",
			"rating":       "4",
			"stay_date":    "2026-04-10",
		}
		for k, v := range fields {
			require.NoError(t, mw.WriteField(k, v))
		}
		for i := 0; i < 7; i++ {
			part, err := mw.CreateFormFile("images", fmt.Sprintf("pool-%d.jpg", i))
			require.NoError(t, err)
			_, err = part.Write([]byte("fake image bytes"))
			require.NoError(t, err)
		}
		require.NoError(t, mw.Close())

		req := httptest.NewRequest("POST",
			fmt.Sprintf("/api/posts/%d/reviews", h.post.ID), &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		rec := h.do(req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created models.Review
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Len(t, created.Images, models.MaxReviewImages)
	})
}
