package mailer

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio-backend/pkg/models"
)

func testData() templateData {
	return templateData{
		ContactRequest: models.ContactRequest{
			Name:        "Ada",
			Email:       "ada@example.com",
			ProjectType: "Web App",
			Message:     "Hello there",
		},
		SentAt: "May 1, 2024 10:00 UTC",
	}
}

func TestRenderNotificationTemplate(t *testing.T) {
	body, err := renderTemplate("notification.html", testData())

	assert.NoError(t, err)
	assert.Contains(t, body, "Ada")
	assert.Contains(t, body, "ada@example.com")
	assert.Contains(t, body, "Web App")
	assert.Contains(t, body, "Hello there")
	assert.Contains(t, body, "May 1, 2024 10:00 UTC")
}

func TestRenderAutoReplyTemplate(t *testing.T) {
	body, err := renderTemplate("autoreply.html", testData())

	assert.NoError(t, err)
	assert.Contains(t, body, "Hey Ada!")
	assert.Contains(t, body, "Web App")
}

func TestRenderTemplateEscapesHTML(t *testing.T) {
	data := testData()
	data.Message = `<script>alert("x")</script>`

	body, err := renderTemplate("notification.html", data)

	assert.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestBuildMessages(t *testing.T) {
	mailer := &Mailer{account: "owner@example.com", logger: log.New(io.Discard, "", 0)}
	data := testData()

	notification, err := mailer.buildNotification(data)
	assert.NoError(t, err)
	assert.NotNil(t, notification)

	autoReply, err := mailer.buildAutoReply(data)
	assert.NoError(t, err)
	assert.NotNil(t, autoReply)
}

func TestBuildNotificationRejectsBadReplyTo(t *testing.T) {
	mailer := &Mailer{account: "owner@example.com", logger: log.New(io.Discard, "", 0)}
	data := testData()
	data.Email = "not an address"

	_, err := mailer.buildNotification(data)

	assert.Error(t, err)
}
