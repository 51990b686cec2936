package voice

// Recognition error codes reported by the browser speech capability.
const (
	ErrCodeNoSpeech          = "no-speech"
	ErrCodeAudioCapture      = "audio-capture"
	ErrCodeNotAllowed        = "not-allowed"
	ErrCodeNetwork           = "network"
	ErrCodeAborted           = "aborted"
	ErrCodeServiceNotAllowed = "service-not-allowed"
	ErrCodeUnsupported       = "unsupported"
)

// ErrorMessage maps a recognition error code to its user-facing text.
func ErrorMessage(code string) string {
	switch code {
	case ErrCodeNoSpeech:
		return "No speech detected. Please speak closer to the microphone."
	case ErrCodeAudioCapture:
		return "Microphone not found. Please check your connections."
	case ErrCodeNotAllowed:
		return "Microphone permission denied. Please allow access in browser settings."
	case ErrCodeNetwork:
		return "Network error. Voice input requires internet connection."
	case ErrCodeAborted:
		return "Voice input stopped."
	case ErrCodeServiceNotAllowed:
		return "Voice input is not allowed by this browser."
	case ErrCodeUnsupported:
		return "Voice input is not supported in this browser. Please use Chrome or Edge."
	default:
		return "Voice input error: " + code
	}
}

// IsSoftError reports whether a code just ends the session without
// warranting a persistent error banner.
func IsSoftError(code string) bool {
	return code == ErrCodeNoSpeech || code == ErrCodeAborted
}
