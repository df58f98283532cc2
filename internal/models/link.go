package models

import "time"

// ShortCodeLength длина короткого кода ссылки.
const ShortCodeLength = 6

// ShortLink структура модели хранения сокращенной ссылки.
type ShortLink struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	URL        string    `gorm:"uniqueIndex;size:512;not null" json:"url"`
	ShortCode  string    `gorm:"uniqueIndex;size:6;not null" json:"shortCode"`
	ClickCount uint64    `gorm:"not null;default:0" json:"clickCount"`
}
