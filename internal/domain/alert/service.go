package alert

import "context"

type Service interface {
	// Raise stores a new alert and fans it out to stream subscribers.
	// A duplicate reference is not an error; the returned bool is false.
	Raise(ctx context.Context, req RaiseAlertRequest) (AlertResponse, bool, error)
	ListAlerts(ctx context.Context, filter AlertFilter) ([]AlertResponse, error)
	Resolve(ctx context.Context, id string) error
	// Subscribe returns a channel of newly raised alerts and its cleanup.
	Subscribe() (<-chan AlertResponse, func())
}

// Notifier delivers high severity alerts out of band.
type Notifier interface {
	SendAlert(ctx context.Context, a AlertResponse) error
}
