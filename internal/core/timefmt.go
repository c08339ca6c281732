package core

import (
	"fmt"
	"math"
	"time"
)

// FormatDuration renders d as hh:mm:ss.ss.
func FormatDuration(d time.Duration) string {
	secs := d.Seconds()
	whole := int(secs)
	return fmt.Sprintf("%02d:%02d:%05.2f", whole/3600, (whole/60)%60, math.Mod(secs, 60))
}
