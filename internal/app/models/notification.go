package models

import "time"

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
	NotificationInfo    NotificationKind = "info"
)

const DefaultNotificationDuration = 3 * time.Second

// Notification is a transient toast message.
type Notification struct {
	Message  string           `json:"message"`
	Kind     NotificationKind `json:"kind"`
	Duration time.Duration    `json:"duration"`
}

func NewNotification(kind NotificationKind, message string) Notification {
	return Notification{Message: message, Kind: kind, Duration: DefaultNotificationDuration}
}

func Success(message string) Notification { return NewNotification(NotificationSuccess, message) }
func Error(message string) Notification   { return NewNotification(NotificationError, message) }
func Info(message string) Notification    { return NewNotification(NotificationInfo, message) }
