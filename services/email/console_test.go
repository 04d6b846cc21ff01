package emailsvc_test

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/beacon/core"
	"github.com/trezcool/beacon/core/category"
	emailsvc "github.com/trezcool/beacon/services/email"
	testutil "github.com/trezcool/beacon/tests"
)

func TestConsoleServiceMock_SendMessage(t *testing.T) {
	conf := testutil.NewConfig(t)
	svc := emailsvc.NewConsoleServiceMock(conf)
	emailsvc.ClearSentMessages()

	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: "ACME", Address: "acme@vendor.cd"}},
		Subject:      "Thank you for signing up!",
		TemplateName: "vendor-signup",
		TemplateData: struct {
			BusinessName string
			Categories   []category.Category
		}{"ACME", []category.Category{{ID: 1, Category: "Construction", Subcategory: "Paving"}}},
	}
	require.NoError(t, svc.SendMessage(msg))

	require.Len(t, emailsvc.SentMessages, 1)
	sent := emailsvc.SentMessages[0]
	assert.Contains(t, sent.TextContent, "Hello ACME")
	assert.Contains(t, sent.TextContent, "Paving")
	assert.Contains(t, sent.TextContent, conf.FrontendBaseURL+"/beacon/manage")
	assert.Contains(t, sent.HTMLContent, "<li>Construction &mdash; Paving</li>")
}

func TestConsoleServiceMock_SendMessage_plainBody(t *testing.T) {
	conf := testutil.NewConfig(t)
	svc := emailsvc.NewConsoleServiceMock(conf)
	emailsvc.ClearSentMessages()

	msg := &core.EmailMessage{
		To:      []mail.Address{{Address: "someone@test.cd"}},
		Subject: "hi",
		BodyStr: "plain content",
	}
	require.NoError(t, svc.SendMessage(msg))

	require.Len(t, emailsvc.SentMessages, 1)
	assert.Equal(t, "plain content", emailsvc.SentMessages[0].TextContent)
}

func TestConsoleServiceMock_SendMessage_noRecipients(t *testing.T) {
	conf := testutil.NewConfig(t)
	svc := emailsvc.NewConsoleServiceMock(conf)
	emailsvc.ClearSentMessages()

	msg := &core.EmailMessage{Subject: "hi", BodyStr: "content"}
	require.NoError(t, svc.SendMessage(msg))
	assert.Empty(t, emailsvc.SentMessages)
}
