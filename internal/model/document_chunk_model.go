package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentChunk struct {
	Id           uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content      string                      `gorm:"type:text;not null"`
	Source       string                      `gorm:"type:text;not null;index"`
	Category     string                      `gorm:"type:text;not null;index"`
	Tags         datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	IsFAQ        bool                        `gorm:"column:is_faq;default:false"`
	SectionTitle string                      `gorm:"type:text"`
	Embedding    pgvector.Vector             `gorm:"type:vector(3072)"` // text-embedding-3-large dimensions
	CreatedAt    time.Time                   `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
