package usecasees

//go:generate mockery --case=snake --name=NotificationSink

// NotificationSink is a write-only fan-out for user- and operator-facing
// messages. Fire-and-forget: delivery failures are logged by implementations,
// never returned.
type NotificationSink interface {
	Emit(targetID, message, category, link string)
}
