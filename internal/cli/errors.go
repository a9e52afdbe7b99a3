package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Vault errors
	ErrVaultNotFound     = "VAULT_NOT_FOUND"
	ErrVaultNotSpecified = "VAULT_NOT_SPECIFIED"
	ErrConfigInvalid     = "CONFIG_INVALID"

	// Note errors
	ErrNoteNotFound   = "NOTE_NOT_FOUND"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Index errors
	ErrIndexError = "INDEX_ERROR"

	// Model errors
	ErrModelError        = "MODEL_ERROR"
	ErrModelReplyInvalid = "MODEL_REPLY_INVALID"

	// Editing errors
	ErrNoSimilarNotes = "NO_SIMILAR_NOTES"
	ErrUnsafeChange   = "UNSAFE_CHANGE"

	// General errors
	ErrInvalidInput = "INVALID_INPUT"
	ErrInternal     = "INTERNAL_ERROR"
)
