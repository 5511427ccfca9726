package models

import "time"

// Vector is one persisted single-block DES test record. The engine is
// mode-less, so unlike chained-cipher vectors there is no IV column;
// input/output are always one 8-byte block in hex.
type Vector struct {
	ID        string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    string `gorm:"type:uuid;not null" json:"user_id"`
	ClientID  string `gorm:"type:uuid;not null" json:"client_id"`
	Algorithm string `gorm:"not null" json:"algorithm"`

	TestMode   string `json:"test_mode"`   // KAT or MCT
	KatVariant string `json:"kat_variant"` // GFSBOX/KEYSBOX/VARKEY/VARTXT when KAT
	Direction  string `json:"direction"`   // ENCRYPT or DECRYPT

	Params JSONB `gorm:"type:jsonb" json:"params"`

	KeyHex    string  `json:"key_hex"`
	InputHex  *string `json:"input_hex"`
	OutputHex *string `json:"output_hex"`
	WeakKey   bool    `gorm:"not null;default:false" json:"weak_key"`

	Status    string    `json:"status"` // ready, done, failed
	CreatedAt time.Time `json:"created_at"`
}

func (Vector) TableName() string { return "vectors" }
