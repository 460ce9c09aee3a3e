package facade

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jon4hz/playbox/internal/models"
	"github.com/jon4hz/playbox/internal/repository"
	"gorm.io/gorm"
)

var (
	// ErrInvalidArgument is returned for models that cannot be saved as given.
	ErrInvalidArgument = models.ErrInvalidArgument
	// ErrNotFound is returned when a membership or row to change does not exist.
	ErrNotFound = repository.ErrNotFound
	// ErrInvalidOperation is returned when the store rejects a change.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrConstraintViolation is wrapped together with ErrInvalidOperation when a foreign key
	// or unique constraint rejected the change.
	ErrConstraintViolation = errors.New("constraint violation")
)

// translate turns store constraint failures into ErrInvalidOperation. Other errors are
// returned unchanged.
func translate(err error) error {
	if err == nil || !isConstraintError(err) {
		return err
	}
	return fmt.Errorf("%w: %w: %w", ErrInvalidOperation, ErrConstraintViolation, err)
}

func isConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	// sqlite reports e.g. "FOREIGN KEY constraint failed" when the dialect did not translate it
	return strings.Contains(err.Error(), "constraint failed")
}
