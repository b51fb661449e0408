// Package notification holds the transitions of the single user-visible
// message slot. State is passed in and returned, never shared.
package notification

import "github.com/de-tools/solar-atlas/pkg/models/domain"

// Show returns a state displaying message with the given severity.
// An empty severity falls back to info.
func Show(_ domain.Notification, message string, severity domain.Severity) domain.Notification {
	if severity == "" {
		severity = domain.SeverityInfo
	}
	return domain.Notification{
		Open:     true,
		Message:  message,
		Severity: severity,
	}
}

// Hide closes the message but keeps its text and severity, so a closing
// animation still has something to render.
func Hide(state domain.Notification) domain.Notification {
	state.Open = false
	return state
}

func Error(message string) domain.Notification {
	return Show(domain.Notification{}, message, domain.SeverityError)
}

func Success(message string) domain.Notification {
	return Show(domain.Notification{}, message, domain.SeveritySuccess)
}
