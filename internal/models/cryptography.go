package models

import "time"

// Cryptography is the algorithm catalogue row a generation request is
// validated against.
type Cryptography struct {
	ID            string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Algorithm     string    `gorm:"uniqueIndex;not null" json:"algorithm"`
	Category      string    `gorm:"not null" json:"category"`
	TestModes     JSONB     `gorm:"type:jsonb;not null;default:'[]'::jsonb" json:"test_modes"`
	KatVariants   JSONB     `gorm:"type:jsonb;not null;default:'[]'::jsonb" json:"kat_variants"`
	KeyLengths    JSONB     `gorm:"type:jsonb;not null;default:'[]'::jsonb" json:"key_lengths"`
	BlockSizeBits *int      `json:"block_size_bits,omitempty"`
	StandardRef   *string   `json:"standard_ref,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
