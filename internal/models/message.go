package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeAudio MessageType = "audio"
)

// Message is the flat document stored once per accepted submission.
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MessageType MessageType        `bson:"message_type" json:"message_type"`

	// Message holds the submitted text, or the transcript for audio.
	Message           string `bson:"message" json:"message"`
	SimplifiedMessage string `bson:"simplified_message" json:"simplified_message"`

	AudioBytes    []byte `bson:"audio_bytes,omitempty" json:"-"`
	AudioFilename string `bson:"audio_filename,omitempty" json:"audio_filename,omitempty"`
	AudioURL      string `bson:"audio_url,omitempty" json:"audio_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
