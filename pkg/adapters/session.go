package adapters

import (
	"github.com/de-tools/solar-atlas/pkg/models/api"
	"github.com/de-tools/solar-atlas/pkg/models/domain"
)

func MapDomainSessionToAPI(s domain.Session) api.Session {
	out := api.Session{Token: s.Token}
	if s.User != nil {
		out.User = api.User{
			Email: s.User.Email,
			Name:  s.User.Name,
			Role:  string(s.User.Role),
		}
	}
	return out
}

func MapDomainNotificationToAPI(n domain.Notification) api.Notification {
	return api.Notification{
		Message:  n.Message,
		Severity: string(n.Severity),
	}
}
