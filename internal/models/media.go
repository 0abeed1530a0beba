package models

import (
	"time"

	"gorm.io/datatypes"
)

// ImageSize describes one derived rendition of an uploaded image. The
// renditions themselves are produced out of band; only the layout is recorded.
type ImageSize struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Filename string `json:"filename,omitempty"`
}

// DerivedSizes enumerates the renditions declared for every image upload.
var DerivedSizes = map[string]ImageSize{
	"thumbnail": {Width: 400, Height: 300},
	"card":      {Width: 768, Height: 512},
	"featured":  {Width: 1200, Height: 675},
}

// Media is an uploaded binary asset with accessibility metadata.
type Media struct {
	ID        uint64                                   `gorm:"primaryKey;autoIncrement" json:"id"`
	Alt       string                                   `gorm:"size:255;not null" json:"alt"`
	Caption   string                                   `gorm:"size:1024" json:"caption,omitempty"`
	Filename  string                                   `gorm:"size:255;not null;uniqueIndex" json:"filename"`
	MimeType  string                                   `gorm:"size:128" json:"mimeType,omitempty"`
	Filesize  int64                                    `json:"filesize"`
	Sizes     datatypes.JSONType[map[string]ImageSize] `json:"sizes"`
	CreatedAt time.Time                                `json:"createdAt"`
	UpdatedAt time.Time                                `json:"updatedAt"`
}

// URL returns the public path the asset is served from.
func (m Media) URL() string {
	return "/uploads/" + m.Filename
}

// TableName overrides the table name for Media
func (Media) TableName() string {
	return "media"
}
