package conversation

import "errors"

var (
	// ErrNotFound is returned when a session id is unknown or has been evicted.
	ErrNotFound = errors.New("conversation not found")

	// ErrSessionEnded is returned when a reply targets a completed session.
	ErrSessionEnded = errors.New("conversation has ended")

	// ErrConfiguration is returned when a language has no phrases to draw from.
	// It is checked at startup and is never expected while serving requests.
	ErrConfiguration = errors.New("phrase pool misconfigured")

	// ErrEnrichmentFailed wraps failures of the external phrase generator.
	// The session is left exactly as it was before the call.
	ErrEnrichmentFailed = errors.New("phrase enrichment failed")

	// ErrSessionBusy is returned when concurrent replies kept changing a session
	// while an enriched phrase was being generated for it.
	ErrSessionBusy = errors.New("conversation is busy")

	// ErrStoreClosed is returned by Create after the store has been shut down.
	ErrStoreClosed = errors.New("session store closed")
)
