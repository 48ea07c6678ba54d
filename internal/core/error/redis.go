package errx

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

// WrapRedis maps Redis errors to AppError, treating redis.Nil as not found.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return New(err, KindNotFound, NotFoundMessage)
	}
	return New(err, KindArchive, RedisErrorMessage)
}
