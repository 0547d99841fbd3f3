package chat

// Reason identifies why a conversation is handed off to human support.
// The set is closed: adding a reason means adding a case to Message, and
// the compiler-visible switch keeps translations from silently falling
// through to the generic text.
type Reason string

const (
	ReasonAIUnavailable  Reason = "ai_unavailable"
	ReasonComplexity     Reason = "complexity"
	ReasonUserRequest    Reason = "user_request"
	ReasonSolutionFailed Reason = "solution_failed"
	ReasonServerError    Reason = "server_error"
	ReasonUnknown        Reason = "unknown"
)

// ParseReason maps a wire string onto a known Reason, falling back to
// ReasonUnknown for anything unrecognized.
func ParseReason(s string) Reason {
	switch Reason(s) {
	case ReasonAIUnavailable, ReasonComplexity, ReasonUserRequest,
		ReasonSolutionFailed, ReasonServerError:
		return Reason(s)
	default:
		return ReasonUnknown
	}
}

// Message returns the assistant-voiced hand-off text for the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonAIUnavailable:
		return "The AI assistant is currently unavailable, so I'm connecting you with our human support team."
	case ReasonComplexity:
		return "This issue requires human expertise. I'm connecting you with a support specialist who can help you further."
	case ReasonUserRequest:
		return "Of course! I'm connecting you with our human support team right away."
	case ReasonSolutionFailed:
		return "Since the suggested solutions haven't resolved your issue, I'm escalating this to our human support team."
	case ReasonServerError:
		return "I'm having technical difficulties on my end. Let me connect you with our human support team."
	case ReasonUnknown:
		return "I'm connecting you to our support team for further assistance."
	default:
		return ReasonUnknown.Message()
	}
}
