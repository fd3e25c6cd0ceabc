package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Photo is the metadata record pointing at a stored binary (FileID).
type Photo struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	PhotoID    string        `bson:"Photo_id" json:"Photo_id"`
	FileID     bson.ObjectID `bson:"File_id" json:"File_id"`
	FileName   string        `bson:"File_name" json:"File_name"`
	FileSize   int64         `bson:"File_size,omitempty" json:"File_size,omitempty"`
	MimeType   string        `bson:"Mime_type,omitempty" json:"Mime_type,omitempty"`
	AlumniID   string        `bson:"Alumni_id" json:"Alumni_id"`
	EventID    string        `bson:"Event_id,omitempty" json:"Event_id,omitempty"`
	Tags       []string      `bson:"Tags,omitempty" json:"Tags,omitempty"`
	UploadDate time.Time     `bson:"Upload_date" json:"Upload_date"`
	CreatedAt  time.Time     `bson:"Created_at" json:"Created_at"`
	UpdatedAt  time.Time     `bson:"Updated_at" json:"Updated_at"`
}
