package billing

import (
	"errors"

	"github.com/gymtrack/backend/internal/domain/shared"
)

func notFound(message string) error {
	return shared.NewDomainError("NOT_FOUND", message)
}

func isNotFound(err error) bool {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code == "NOT_FOUND"
	}
	return false
}
