package dto

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"alumni-directory/internal/models"
)

type PhotoInput struct {
	FileID   string   `json:"File_id" validate:"required"`
	FileName string   `json:"File_name" validate:"required"`
	FileSize int64    `json:"File_size,omitempty" validate:"gte=0"`
	MimeType string   `json:"Mime_type,omitempty"`
	AlumniID string   `json:"Alumni_id" validate:"required"`
	EventID  string   `json:"Event_id,omitempty"`
	Tags     []string `json:"Tags,omitempty"`
}

func (in PhotoInput) Model() (*models.Photo, error) {
	fileID, err := bson.ObjectIDFromHex(in.FileID)
	if err != nil {
		return nil, fmt.Errorf("File_id %q is not a valid id", in.FileID)
	}
	return &models.Photo{
		FileID:   fileID,
		FileName: in.FileName,
		FileSize: in.FileSize,
		MimeType: in.MimeType,
		AlumniID: in.AlumniID,
		EventID:  in.EventID,
		Tags:     in.Tags,
	}, nil
}

type PhotoUpdateInput struct {
	FileID   *string  `json:"File_id,omitempty"`
	FileName *string  `json:"File_name,omitempty"`
	FileSize *int64   `json:"File_size,omitempty" validate:"omitempty,gte=0"`
	MimeType *string  `json:"Mime_type,omitempty"`
	AlumniID *string  `json:"Alumni_id,omitempty"`
	EventID  *string  `json:"Event_id,omitempty"`
	Tags     []string `json:"Tags,omitempty"`
}

func (in PhotoUpdateInput) Set() (bson.M, error) {
	set := bson.M{}
	if in.FileID != nil {
		fileID, err := bson.ObjectIDFromHex(*in.FileID)
		if err != nil {
			return nil, fmt.Errorf("File_id %q is not a valid id", *in.FileID)
		}
		set["File_id"] = fileID
	}
	put(set, "File_name", in.FileName)
	put(set, "File_size", in.FileSize)
	put(set, "Mime_type", in.MimeType)
	put(set, "Alumni_id", in.AlumniID)
	put(set, "Event_id", in.EventID)
	putSlice(set, "Tags", in.Tags)
	return set, nil
}
