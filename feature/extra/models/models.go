package models

// Content categories for the identity map.
const (
	ContentTypePlayer   = "player"
	ContentTypeRetainer = "retainer"
)

// ContentID maps a hashed content ID to the display name most recently
// uploaded for it, tagged with whether it belongs to a player or a
// retainer. Uploads overwrite the name last-write-wins; the raw content
// ID never reaches storage.
type ContentID struct {
	ContentID     string `gorm:"primaryKey;size:64" json:"contentID"`
	ContentType   string `gorm:"size:16" json:"contentType"`
	CharacterName string `gorm:"size:64" json:"characterName"`
	UpdatedAt     int64  `json:"-"`
}

// UploadHistoryView is the daily upload count series, most recent day
// first. Days with no uploads report zero.
type UploadHistoryView struct {
	Count []int64 `json:"count"`
}

// WorldUploadCount is one world's share of the total upload volume.
type WorldUploadCount struct {
	Count      int64   `json:"count"`
	Proportion float64 `json:"proportion"`
}

// RecentlyUpdatedView lists the most recently uploaded item IDs, newest
// first, without duplicates.
type RecentlyUpdatedView struct {
	Items []uint32 `json:"items"`
}
