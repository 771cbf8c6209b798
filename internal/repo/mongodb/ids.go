package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var ErrInvalidID = errors.New("malformed identifier")

// ParseID validates a path-supplied identifier before it is handed to the
// store. Malformed input is rejected here instead of surfacing as a driver
// fault deeper down.
func ParseID(hex string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)

	if err != nil {
		return bson.ObjectID{}, ErrInvalidID
	}

	return id, nil
}
