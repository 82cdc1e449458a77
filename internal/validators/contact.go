package validators

import (
	"net/mail"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion é usada quando o número chega sem código do país.
const DefaultPhoneRegion = "BR"

// NormalizePhone devolve o número em E.164, que é o formato aceito pelo
// envio de SMS.
func NormalizePhone(phone string) (string, bool) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", false
	}

	num, err := phonenumbers.Parse(phone, DefaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", false
	}
	return phonenumbers.Format(num, phonenumbers.E164), true
}

// IsEmailValid só valida a sintaxe; o domínio não é consultado.
func IsEmailValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	at := strings.LastIndex(addr.Address, "@")
	return addr.Address == email && at > 0 && strings.Contains(email[at+1:], ".")
}
