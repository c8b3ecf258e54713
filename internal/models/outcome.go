package models

const (
	// StatusSent indicates the channel delivered and, where applicable,
	// returned a message id.
	StatusSent = "sent"
	// StatusSkipped indicates the channel had nothing to do for this
	// submission.
	StatusSkipped = "skipped"
	// StatusFailed indicates the delivery attempt errored. Failures are
	// contained per channel and never fail the request.
	StatusFailed = "failed"
)

// Outcome captures one channel's delivery result. It only populates the
// response summary flags; it is never surfaced as an error to the caller.
type Outcome struct {
	Status string
	ID     string
	Reason string
	Err    error
}

func SentOutcome(id string) Outcome {
	return Outcome{Status: StatusSent, ID: id}
}

func SkippedOutcome(reason string) Outcome {
	return Outcome{Status: StatusSkipped, Reason: reason}
}

func FailedOutcome(err error) Outcome {
	return Outcome{Status: StatusFailed, Err: err}
}

// Sent reports whether the channel actually delivered.
func (o Outcome) Sent() bool {
	return o.Status == StatusSent
}

// DispatchResult aggregates the four independent channel outcomes.
type DispatchResult struct {
	Slack        Outcome
	BusinessSMS  Outcome
	SecondarySMS Outcome
	CustomerSMS  Outcome
}

// SubmissionResponse is the body returned for an accepted POST.
type SubmissionResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	ReceivedAt        string `json:"receivedAt"`
	SlackSent         bool   `json:"slackSent"`
	BusinessSmsSent   bool   `json:"businessSmsSent"`
	AdditionalSmsSent bool   `json:"additionalSmsSent"`
	CustomerSmsSent   bool   `json:"customerSmsSent"`
}
