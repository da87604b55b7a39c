package services

import "time"

// now ถูกแทนที่ใน test
var now = func() time.Time { return time.Now().UTC() }
