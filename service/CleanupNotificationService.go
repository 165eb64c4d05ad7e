package service

import (
	"fmt"

	"github.com/Tayttopaikka/tayttopaikka-backend/client"
	"github.com/Tayttopaikka/tayttopaikka-backend/config"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CleanupNotificationService builds and sends the retention-workflow emails.
// SendFinalWarning is the 47-month notice; no scheduled stage invokes it yet.
type CleanupNotificationService interface {
	SendInactivityWarning(user *view.InactiveUser) error
	SendArchivedNotification(user *view.InactiveUser) error
	SendFinalWarning(user *view.InactiveUser) error
	SendUnpaidInvoiceAdminAlert(user *view.InactiveUser, unpaidCount int) error
}

func NewCleanupNotificationService(emailClient client.EmailClient, cfg config.EmailConfig) CleanupNotificationService {
	return &cleanupNotificationServiceImpl{emailClient: emailClient, cfg: cfg}
}

type cleanupNotificationServiceImpl struct {
	emailClient client.EmailClient
	cfg         config.EmailConfig
}

func (s *cleanupNotificationServiceImpl) SendInactivityWarning(user *view.InactiveUser) error {
	if user.Email == nil {
		return errors.Errorf("user %s has no email address", user.Id)
	}
	subject := "Täyttöpaikka - Käyttäjätili arkistoidaan pian"
	text := fmt.Sprintf(`Hei %s,

Täyttöpaikka-palvelun käyttäjätilisi on ollut käyttämättä %d kuukautta.

Tietosuojakäytäntömme mukaisesti käyttäjätilit arkistoidaan automaattisesti, kun viimeisestä kirjautumisesta on kulunut kolme vuotta (36 kuukautta).

Tilisi arkistoidaan kahden kuukauden kuluttua, ellet kirjaudu palveluun ennen sitä.

Jos haluat jatkaa palvelun käyttöä, kirjaudu sisään osoitteessa: %s

Terveisin,
Täyttöpaikka-tiimi`, derefOrEmpty(user.Forename), user.MonthsInactive, s.cfg.FrontendUrl)

	if err := s.emailClient.SendEmail(*user.Email, subject, text); err != nil {
		return err
	}
	log.Infof("Sent 34-month inactivity warning email to user %s", user.Id)
	return nil
}

func (s *cleanupNotificationServiceImpl) SendArchivedNotification(user *view.InactiveUser) error {
	if user.Email == nil {
		return errors.Errorf("user %s has no email address", user.Id)
	}
	subject := "Täyttöpaikka - Käyttäjätili arkistoitu"
	text := fmt.Sprintf(`Hei %s,

Täyttöpaikka-palvelun käyttäjätilisi on arkistoitu automaattisesti, koska viimeisestä kirjautumisesta on kulunut yli kolme vuotta.

Tietosuojakäytäntömme mukaisesti arkistoitujen käyttäjien tiedot anonymisoidaan vuoden kuluessa, ellei käyttäjä osoita halukkuuttaan jatkaa palvelun käyttöä.

Jos haluat jatkaa palvelun käyttöä, ota yhteyttä osoitteeseen %s

Terveisin,
Täyttöpaikka-tiimi`, derefOrEmpty(user.Forename), s.cfg.AdminEmail)

	if err := s.emailClient.SendEmail(*user.Email, subject, text); err != nil {
		return err
	}
	log.Infof("Sent archive notification email to user %s", user.Id)
	return nil
}

func (s *cleanupNotificationServiceImpl) SendFinalWarning(user *view.InactiveUser) error {
	if user.Email == nil {
		return errors.Errorf("user %s has no email address", user.Id)
	}
	subject := "Täyttöpaikka - Käyttäjätiedot anonymisoidaan pian"
	text := fmt.Sprintf(`Hei %s,

Täyttöpaikka-palvelun käyttäjätilisi on ollut arkistoituna 11 kuukautta.

Tietosuojakäytäntömme mukaisesti arkistoitujen käyttäjien tiedot anonymisoidaan vuoden kuluttua arkistoinnista, ellei käyttäjä osoita halukkuuttaan jatkaa palvelun käyttöä.

Tietosi anonymisoidaan yhden kuukauden kuluttua.

Jos haluat jatkaa palvelun käyttöä, ota yhteyttä osoitteeseen %s

Terveisin,
Täyttöpaikka-tiimi`, derefOrEmpty(user.Forename), s.cfg.AdminEmail)

	if err := s.emailClient.SendEmail(*user.Email, subject, text); err != nil {
		return err
	}
	log.Infof("Sent final warning email to user %s", user.Id)
	return nil
}

func (s *cleanupNotificationServiceImpl) SendUnpaidInvoiceAdminAlert(user *view.InactiveUser, unpaidCount int) error {
	subject := "Täyttöpaikka - Arkistoitavalla käyttäjällä maksamattomia laskuja"
	archivedAt := "Ei"
	if user.ArchivedAt != nil {
		archivedAt = user.ArchivedAt.Format("02.01.2006")
	}
	text := fmt.Sprintf(`Hei,

Automaattinen käyttäjätilien arkistointi/anonymisointi on havainnut käyttäjän, jolla on maksamattomia laskuja:

Käyttäjä: %s %s
Sähköposti: %s
Käyttäjä-ID: %s
Viimeisin kirjautuminen: %s
Arkistoitu: %s
Maksamattomia täyttötapahtumia: %d

Käyttäjää ei arkistoida/anonymisoida ennen kuin maksut on suoritettu.

Toimenpiteet:
1. Tarkista maksamattomat laskut järjestelmästä
2. Ota tarvittaessa yhteyttä käyttäjään
3. Suorita maksut tai merkitse ne maksetuiksi
4. Automaattinen arkistointi tapahtuu seuraavassa ajossa maksujen selvittyä

Terveisin,
Täyttöpaikka-järjestelmä`,
		derefOrEmpty(user.Forename), derefOrEmpty(user.Surname), derefOrEmpty(user.Email),
		user.Id, user.LastLogin.Format("02.01.2006"), archivedAt, unpaidCount)

	if err := s.emailClient.SendEmail(s.cfg.AdminEmail, subject, text); err != nil {
		return err
	}
	log.Infof("Sent unpaid invoice notification to admin for user %s", user.Id)
	return nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
