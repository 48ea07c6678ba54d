package errx

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// WrapMongo maps MongoDB errors to AppError, treating ErrNoDocuments as not found.
func WrapMongo(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return New(err, KindNotFound, NotFoundMessage)
	}
	return New(err, KindArchive, MongoErrorMessage)
}
