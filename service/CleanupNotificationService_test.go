package service

import (
	"testing"
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/config"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentEmail struct {
	to      string
	subject string
	text    string
}

type fakeEmailClient struct {
	sent []sentEmail
}

func (f *fakeEmailClient) SendEmail(to string, subject string, text string) error {
	f.sent = append(f.sent, sentEmail{to: to, subject: subject, text: text})
	return nil
}

func testEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		AdminEmail:  "gdpr@tayttopaikka.fi",
		FrontendUrl: "https://tayttopaikka.fi",
	}
}

func testInactiveUser() *view.InactiveUser {
	email := "sukeltaja@example.com"
	forename := "Maija"
	surname := "Meikäläinen"
	return &view.InactiveUser{
		Id:             "u1",
		Email:          &email,
		Forename:       &forename,
		Surname:        &surname,
		LastLogin:      time.Date(2022, 10, 15, 12, 0, 0, 0, time.UTC),
		MonthsInactive: 34,
	}
}

func TestInactivityWarningEmail(t *testing.T) {
	client := &fakeEmailClient{}
	svc := NewCleanupNotificationService(client, testEmailConfig())

	require.NoError(t, svc.SendInactivityWarning(testInactiveUser()))
	require.Len(t, client.sent, 1)

	email := client.sent[0]
	assert.Equal(t, "sukeltaja@example.com", email.to)
	assert.Equal(t, "Täyttöpaikka - Käyttäjätili arkistoidaan pian", email.subject)
	assert.Contains(t, email.text, "Hei Maija")
	assert.Contains(t, email.text, "34 kuukautta")
	assert.Contains(t, email.text, "https://tayttopaikka.fi")
}

func TestInactivityWarningFailsWithoutEmail(t *testing.T) {
	client := &fakeEmailClient{}
	svc := NewCleanupNotificationService(client, testEmailConfig())

	user := testInactiveUser()
	user.Email = nil
	err := svc.SendInactivityWarning(user)
	require.Error(t, err)
	assert.Empty(t, client.sent)
}

func TestArchivedNotificationEmail(t *testing.T) {
	client := &fakeEmailClient{}
	svc := NewCleanupNotificationService(client, testEmailConfig())

	require.NoError(t, svc.SendArchivedNotification(testInactiveUser()))
	require.Len(t, client.sent, 1)

	email := client.sent[0]
	assert.Equal(t, "Täyttöpaikka - Käyttäjätili arkistoitu", email.subject)
	assert.Contains(t, email.text, "arkistoitu automaattisesti")
	assert.Contains(t, email.text, "gdpr@tayttopaikka.fi")
}

func TestUnpaidInvoiceAdminAlertGoesToAdmin(t *testing.T) {
	client := &fakeEmailClient{}
	svc := NewCleanupNotificationService(client, testEmailConfig())

	user := testInactiveUser()
	archivedAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	user.ArchivedAt = &archivedAt

	require.NoError(t, svc.SendUnpaidInvoiceAdminAlert(user, 3))
	require.Len(t, client.sent, 1)

	email := client.sent[0]
	assert.Equal(t, "gdpr@tayttopaikka.fi", email.to)
	assert.Contains(t, email.text, "Maija Meikäläinen")
	assert.Contains(t, email.text, "Maksamattomia täyttötapahtumia: 3")
	assert.Contains(t, email.text, "01.03.2025")
	assert.Contains(t, email.text, "15.10.2022")
}

func TestUnpaidInvoiceAdminAlertWithoutArchiveDate(t *testing.T) {
	client := &fakeEmailClient{}
	svc := NewCleanupNotificationService(client, testEmailConfig())

	require.NoError(t, svc.SendUnpaidInvoiceAdminAlert(testInactiveUser(), 1))
	require.Len(t, client.sent, 1)
	assert.Contains(t, client.sent[0].text, "Arkistoitu: Ei")
}
