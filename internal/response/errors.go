package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication / Authorization ────────────────────────────────
	ErrTokenRequired    ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid     ErrCode = "TOKEN_INVALID"
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrAuthorAccessOnly ErrCode = "AUTHOR_ACCESS_ONLY"
	ErrRespondentOnly   ErrCode = "RESPONDENT_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Authoring ─────────────────────────────────────────────────────
	ErrEmptyTitle           ErrCode = "EMPTY_TITLE"
	ErrNoQuestions          ErrCode = "NO_QUESTIONS"
	ErrEmptyQuestionText    ErrCode = "EMPTY_QUESTION_TEXT"
	ErrIncompleteOptions    ErrCode = "INCOMPLETE_OPTIONS"
	ErrMissingCorrectAnswer ErrCode = "MISSING_CORRECT_ANSWER"
	ErrNonPositivePoints    ErrCode = "NON_POSITIVE_POINTS"

	// ─── Delivery / Grading ────────────────────────────────────────────
	ErrExamNotFound          ErrCode = "EXAM_NOT_FOUND"
	ErrSubmissionNotFound    ErrCode = "SUBMISSION_NOT_FOUND"
	ErrSubmissionWriteFailed ErrCode = "SUBMISSION_WRITE_FAILED"

	// ─── Store / Server ────────────────────────────────────────────────
	ErrStoreUnavailable ErrCode = "STORE_UNAVAILABLE"
	ErrMalformedRecord  ErrCode = "MALFORMED_RECORD"
	ErrInternal         ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrAuthorAccessOnly:
		return "This resource is restricted to exam authors."
	case ErrRespondentOnly:
		return "This resource is restricted to respondents."

	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	case ErrEmptyTitle:
		return "The exam title must not be empty."
	case ErrNoQuestions:
		return "The exam must contain at least one question."
	case ErrEmptyQuestionText:
		return "The question text must not be empty."
	case ErrIncompleteOptions:
		return "Every option of a multiple choice question must be filled in."
	case ErrMissingCorrectAnswer:
		return "A multiple choice question must mark one option as correct."
	case ErrNonPositivePoints:
		return "Question points must be a positive number."

	case ErrExamNotFound:
		return "The exam was not found."
	case ErrSubmissionNotFound:
		return "No submission exists for this exam and respondent."
	case ErrSubmissionWriteFailed:
		return "The submission could not be saved. Please try again."

	case ErrStoreUnavailable:
		return "The data store is temporarily unavailable."
	case ErrMalformedRecord:
		return "A stored record did not match the expected format."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
