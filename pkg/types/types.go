package types

// CheckMessageRequest is the body of the guardrail check endpoint, called by
// the chat backend before a message is shown in either direction.
type CheckMessageRequest struct {
	Text      string `json:"text"`
	ClientID  string `json:"client_id"`
	Direction string `json:"direction"`
}

// CheckMessageResponse is always returned with HTTP 200 once a decision was
// reached, including for blocked messages. Message carries the canned
// supportive text to show instead of a blocked message.
type CheckMessageResponse struct {
	Allowed  bool   `json:"allowed"`
	Reason   string `json:"reason,omitempty"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message,omitempty"`
}

type CreateKeywordRequest struct {
	Keyword  string `json:"keyword"`
	Severity string `json:"severity"`
}

type UpdateKeywordRequest struct {
	Severity *string `json:"severity,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}
