package utils

import (
	"fmt"
	"time"
)

// ParseDateFlexible รับได้หลายรูปแบบจากหน้า admin
func ParseDateFlexible(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05.000Z",
		"02/01/2006",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid time format")
}
