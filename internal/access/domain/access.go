package domain

import "time"

// AccessLogEntry is one row of the append-only audit ledger. UserID is
// nil when the presented card was not registered; FailureReason is nil
// exactly when access was granted.
type AccessLogEntry struct {
	ID            string    `json:"id"`
	UserID        *string   `json:"user_id"`
	CardUID       string    `json:"card_uid"`
	Granted       bool      `json:"access_granted"`
	FailureReason *string   `json:"failure_reason"`
	AccessTime    time.Time `json:"access_time"`
}

// AccessLogRecord is a ledger row joined with the owning user for the
// admin listing. The user fields are nil for unregistered cards and for
// users deleted after the event.
type AccessLogRecord struct {
	AccessLogEntry

	UserName  *string `json:"user_name"`
	UserEmail *string `json:"user_email"`
}

// UserSummary identifies the granted user in a decision response.
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Decision is the outcome of one card presentation.
type Decision struct {
	Granted   bool         `json:"access_granted"`
	User      *UserSummary `json:"user"`
	Reason    string       `json:"reason"`
	Timestamp time.Time    `json:"timestamp"`
}
