package internal

// Mood labels a check-in can carry. The set is fixed; anything else is
// rejected at the service layer.
const (
	MoodEcstatic = "Ecstatic"
	MoodHappy    = "Happy"
	MoodNeutral  = "Neutral"
	MoodSad      = "Sad"
	MoodAnxious  = "Anxious"
	MoodFocused  = "Focused"
	MoodSleepy   = "Sleepy"
)

// Achievement identifiers. Once granted they are never revoked.
const (
	AchievementCalmStarter      = "Calm Starter"
	AchievementMindful7Day      = "7-Day Mindful"
	AchievementConsistencyChamp = "Consistency Champ"
	AchievementFocusMaster      = "Focus Master"
)

// Activity types that feed the streak engine. Chat deliberately has none.
const (
	ActivityJournal = "journal"
	ActivityMood    = "mood"
	ActivityFocus   = "focus"
)

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	// Stored and compared in plaintext. Inherited from the source app's
	// local-storage auth simulation; not a security design.
	Password   string `json:"password,omitempty"`
	AvatarURL  string `json:"avatarUrl"`
	JoinedDate string `json:"joinedDate"`
}

type MoodEntry struct {
	ID        string `json:"id"`
	Mood      string `json:"mood"`
	Timestamp string `json:"timestamp"`
	Note      string `json:"note,omitempty"`
	AIInsight string `json:"aiInsight,omitempty"`
}

type JournalAnalysis struct {
	MoodSummary         string   `json:"moodSummary"`
	ProductivityInsight string   `json:"productivityInsight"`
	Recommendations     []string `json:"recommendations"`
}

type JournalEntry struct {
	ID         string           `json:"id"`
	Content    string           `json:"content"`
	Timestamp  string           `json:"timestamp"`
	Tags       []string         `json:"tags"`
	Mood       string           `json:"mood"`
	IsLocked   bool             `json:"isLocked"`
	AIAnalysis *JournalAnalysis `json:"aiAnalysis,omitempty"`
}

type ChatMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"` // "user" or "model"
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// StreakData is the singleton streak/achievement record. Date fields are
// calendar-date strings (YYYY-MM-DD), empty when the activity has never
// occurred.
type StreakData struct {
	CurrentStreak    int      `json:"currentStreak"`
	LastActivityDate string   `json:"lastActivityDate,omitempty"`
	JournalStreak    int      `json:"journalStreak"`
	LastJournalDate  string   `json:"lastJournalDate,omitempty"`
	MoodStreak       int      `json:"moodStreak"`
	LastMoodDate     string   `json:"lastMoodDate,omitempty"`
	FocusStreak      int      `json:"focusStreak"`
	LastFocusDate    string   `json:"lastFocusDate,omitempty"`
	Achievements     []string `json:"achievements"`
}

// HasAchievement reports whether id has already been granted.
func (s *StreakData) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// GrantAchievement adds id if not already present. Grants are monotonic.
func (s *StreakData) GrantAchievement(id string) {
	if !s.HasAchievement(id) {
		s.Achievements = append(s.Achievements, id)
	}
}

// ValidMood reports whether mood is one of the fixed labels.
func ValidMood(mood string) bool {
	switch mood {
	case MoodEcstatic, MoodHappy, MoodNeutral, MoodSad, MoodAnxious, MoodFocused, MoodSleepy:
		return true
	}
	return false
}

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}
