package guardrail

import "strings"

const (
	crisisResponse = "I'm really concerned about what you're going through right now. " +
		"You don't have to face this alone. If you are in immediate danger, please call 988 " +
		"(Suicide & Crisis Lifeline) or your local emergency number. Your therapist has been " +
		"notified and will reach out to you soon."

	safetyResponse = "I'm not able to continue with that topic, but I'm here to support you. " +
		"Would you like to talk about how you're feeling today?"

	systemErrorResponse = "I'm having trouble processing messages right now. Please try again " +
		"in a moment. If you need urgent support, please reach out to your therapist or call 988."

	defaultResponse = "I'm here to listen and support you. Would you like to tell me more " +
		"about how you're feeling?"
)

// SelectSafeResponse maps a block reason to the canned supportive text shown
// to the end user. Total function: unknown reasons get the default message.
func SelectSafeResponse(reason string) string {
	switch {
	case reason == "crisis_detected" || strings.HasPrefix(reason, "crisis_keyword"):
		return crisisResponse
	case reason == "safety_violation" || strings.HasSuffix(reason, "moderation_flag"):
		return safetyResponse
	case reason == "system_error" || reason == "safety_check_failed":
		return systemErrorResponse
	default:
		return defaultResponse
	}
}
