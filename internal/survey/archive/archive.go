package archive

import (
	"context"
	"errors"

	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/model"
	logx "github.com/Chative-core-poc-v1/questionnaire/pkg/logger"
)

// Archive keeps completed questionnaire records beyond the CSV file.
type Archive interface {
	Name() string
	Append(ctx context.Context, rec *model.Record) error
	List(ctx context.Context, topic string) ([]*model.Record, error)
	Count(ctx context.Context, topic string) (int, error)
}

// Multi fans records out to every configured archive.
type Multi []Archive

// Append writes rec to every archive. Failures are logged and joined; one
// failing archive does not stop the others.
func (m Multi) Append(ctx context.Context, rec *model.Record) error {
	var errs []error
	for _, a := range m {
		if err := a.Append(ctx, rec); err != nil {
			logx.Warn().Err(err).Str("archive", a.Name()).Str("record", rec.ID).Msg("failed to archive record")
			errs = append(errs, err)
			continue
		}
		logx.Debug().Str("archive", a.Name()).Str("record", rec.ID).Str("topic", rec.Topic).Msg("record archived")
	}
	return errors.Join(errs...)
}

// Count returns the record count of the first archive that answers.
func (m Multi) Count(ctx context.Context, topic string) (int, error) {
	var errs []error
	for _, a := range m {
		n, err := a.Count(ctx, topic)
		if err != nil {
			logx.Warn().Err(err).Str("archive", a.Name()).Str("topic", topic).Msg("failed to count records")
			errs = append(errs, err)
			continue
		}
		return n, nil
	}
	return 0, errors.Join(errs...)
}

// List returns the records of the first archive that answers.
func (m Multi) List(ctx context.Context, topic string) (string, []*model.Record, error) {
	var errs []error
	for _, a := range m {
		recs, err := a.List(ctx, topic)
		if err != nil {
			logx.Warn().Err(err).Str("archive", a.Name()).Str("topic", topic).Msg("failed to list records")
			errs = append(errs, err)
			continue
		}
		return a.Name(), recs, nil
	}
	return "", nil, errors.Join(errs...)
}
