package domain

// PrayerRequest is a prayer-wall entry. ReminderTime, when set, is a future
// point at which the reminder scheduler fires a notification; it is never
// rewritten once notified.
type PrayerRequest struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Description  string `json:"description,omitempty"`
	Date         Millis `json:"date"`
	IsAnswered   bool   `json:"isAnswered"`
	ReminderTime Millis `json:"reminderTime,omitempty"`
}

// FavoriteVerse is a saved scripture passage.
type FavoriteVerse struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Text      string `json:"text"`
	Date      Millis `json:"date"`
	Source    string `json:"source,omitempty"` // "daily" or "chat"
}

// ActivityLog is one completed journey-task reflection.
type ActivityLog struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId"`
	TaskTitle string `json:"taskTitle"`
	Content   string `json:"content"`
	Timestamp Millis `json:"timestamp"`
}

// UserProfile holds profile and accessibility settings, stored on the user's
// root document rather than in a collection.
type UserProfile struct {
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	Email         string `json:"email,omitempty"`
	DateOfBirth   string `json:"dateOfBirth,omitempty"`
	JobTitle      string `json:"jobTitle,omitempty"`
	Bio           string `json:"bio,omitempty"`
	TextSize      int    `json:"textSize,omitempty"`
	HighContrast  bool   `json:"highContrast,omitempty"`
	ReducedMotion bool   `json:"reducedMotion,omitempty"`
}

// DailyVerse is the short encouraging verse shown at the top of the chat.
type DailyVerse struct {
	Text      string `json:"text"`
	Reference string `json:"reference"`
}

// Horoscope is a generated daily reading with its grounding sources.
type Horoscope struct {
	Text    string
	Sources []Source
}

// Source is a web citation backing generated content.
type Source struct {
	URI   string
	Title string
}
