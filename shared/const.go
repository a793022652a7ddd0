package shared

const (
	UserID    = "user_id"
	UserRole  = "user_role"
	SessionID = "session_id"

	CurrencyTensens = "tensens"
	CurrencyOrydors = "orydors"

	RewardKindWheel = "wheel"
	RewardKindChest = "chest"

	TranslationPending    = "pending"
	TranslationInProgress = "translating"
	TranslationCompleted  = "completed"
	TranslationFailed     = "failed"

	MetricBooksRead = "books_read"
	MetricTensens   = "tensens"
	MetricPremium   = "premium"
	MetricTutorial  = "tutorial"
)
