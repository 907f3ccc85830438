package entities

import "time"

// Moment is one sports-moment collectible token. The ledger owns the
// authoritative record; this view is read-only and normalized (2-decimal
// price strings, UTC timestamps, canonical principal text).
type Moment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Sport       string    `json:"sport"`
	PlayerName  string    `json:"player_name"`
	EventDate   string    `json:"event_date"`
	MediaURL    string    `json:"media_url"`
	Owner       string    `json:"owner"`
	Creator     string    `json:"creator"`
	Price       string    `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}
