package util

import (
	"fmt"
	"time"
)

// GenerateTimestampWithPrefix builds a sortable identifier like
// "WB-1717680000000000".
func GenerateTimestampWithPrefix(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixMicro())
}
