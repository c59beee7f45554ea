package filex

import (
	"math"
	"strconv"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders a byte count on a 1024-based scale with at most two
// decimals: 0 -> "0 Bytes", 1536 -> "1.5 KB", 1048576 -> "1 MB". Values past
// the GB range stay in GB.
func FormatSize(b int64) string {
	if b <= 0 {
		return strconv.FormatInt(b, 10) + " Bytes"
	}

	i := 0
	div := int64(1)
	for i < len(sizeUnits)-1 && b >= div*1024 {
		div *= 1024
		i++
	}

	v := math.Round(float64(b)/float64(div)*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
