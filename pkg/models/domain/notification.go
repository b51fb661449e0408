package domain

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a dismissible user-visible message.
type Notification struct {
	Open     bool
	Message  string
	Severity Severity
}
