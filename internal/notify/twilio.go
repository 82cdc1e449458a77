package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type messageAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type Twilio struct {
	api      messageAPI
	from     string
	contacts ContactLookup
}

func NewTwilio(accountSID, authToken, from string, contacts ContactLookup) *Twilio {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &Twilio{
		api:      client.Api,
		from:     from,
		contacts: contacts,
	}
}

func (t *Twilio) Notify(ctx context.Context, entityID uuid.UUID, kind Kind) (Result, error) {
	if kind != KindNextInLine {
		return Skipped("unsupported kind " + string(kind)), nil
	}

	contact, err := t.contacts.ContactForEntry(ctx, entityID)
	if err != nil {
		return Result{}, fmt.Errorf("contact lookup: %w", err)
	}

	phone := strings.TrimSpace(contact.Phone)
	if phone == "" {
		return Skipped("no phone"), nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(t.from)
	params.SetBody(nextInLineBody(contact))

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		return Result{}, fmt.Errorf("twilio send: %w", err)
	}

	if resp != nil && resp.Sid != nil {
		log.Debug().Str("sid", *resp.Sid).Str("entry_id", entityID.String()).Msg("sms sent")
	}

	return Sent(), nil
}

func nextInLineBody(c *Contact) string {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = "cliente"
	}
	if c.ShopName == "" {
		return fmt.Sprintf("Olá %s, você é o próximo da fila!", name)
	}
	return fmt.Sprintf("Olá %s, você é o próximo da fila na %s!", name, c.ShopName)
}
