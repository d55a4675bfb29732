package analytics

import (
	"errors"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// isRetryableError walks the error chain looking for ClickHouse exception
// codes that signal a transient condition worth retrying.
func isRetryableError(err error) bool {
	var exception *clickhouse.Exception

	for {
		if errors.As(err, &exception) {
			switch exception.Code {
			case 160, 209, 241, 319, 516, 1002:
				return true
			}
		}

		nextErr := errors.Unwrap(err)
		if nextErr == nil {
			break
		}
		err = nextErr
	}

	return false
}
