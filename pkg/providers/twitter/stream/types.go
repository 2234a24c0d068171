package stream

import "time"

// Status is one tweet. Raw keeps the exact bytes received from the wire.
type Status struct {
	ID        int64
	Text      string
	CreatedAt time.Time
	Raw       []byte
}

type StatusDeletionNotice struct {
	StatusID int64
	UserID   int64
}

type ScrubGeoNotice struct {
	UserID       int64
	UpToStatusID int64
}

// StallWarning is sent by the server when the client falls behind and the
// server side queue fills up.
type StallWarning struct {
	Code        string
	Message     string
	PercentFull int
}

// DisconnectNotice precedes a server initiated close.
type DisconnectNotice struct {
	Code       int
	StreamName string
	Reason     string
}

// Listener receives stream notifications on the client's delivery goroutine.
// An error returned from OnStatus is reported back through OnException.
type Listener interface {
	OnStatus(status *Status) error
	OnDeletionNotice(notice *StatusDeletionNotice)
	OnScrubGeo(notice *ScrubGeoNotice)
	OnTrackLimitationNotice(limited int64)
	OnStallWarning(warning *StallWarning)
	OnException(err error)
}

// ConnectionLifeCycleListener may be implemented by a Listener in addition.
type ConnectionLifeCycleListener interface {
	OnConnect()
	OnDisconnect()
}
