package repository

import "github.com/goliatone/go-repository-bun"

// IsRecordNotFound reports whether err is the repositories' not-found error.
func IsRecordNotFound(err error) bool {
	return repository.IsRecordNotFound(err)
}
