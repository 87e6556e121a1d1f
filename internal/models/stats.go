package models

type DeckStat struct {
	DeckID          int64   `json:"deck_id"`
	TotalCards      int     `json:"total_cards"`
	NewCards        int     `json:"new_cards"`
	LearningCards   int     `json:"learning_cards"`
	ReviewCards     int     `json:"review_cards"`
	MasteredCards   int     `json:"mastered_cards"`
	CardsDue        int     `json:"cards_due"`
	TotalReviews    int     `json:"total_reviews"`
	OverallAccuracy float64 `json:"overall_accuracy"`
	AvgEaseFactor   float64 `json:"avg_ease_factor"`
	AvgIntervalDays float64 `json:"avg_interval_days"`
}
