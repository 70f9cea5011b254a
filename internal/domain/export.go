package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Export stores metadata about a CSV history export. The file itself resides in S3.
type Export struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	S3ObjectKey string             `bson:"s3ObjectKey" json:"-"` // internal use
	From        string             `bson:"from" json:"from"`     // "YYYY-MM-DD"
	To          string             `bson:"to" json:"to"`
	Rows        int                `bson:"rows" json:"rows"`
	Size        int64              `bson:"size" json:"size"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
