package utils

import (
    "fmt"
    "math"
    "strconv"
)

func TruncateToTwoDecimals(value float64) float64 {
    factor := 100.0
    value, _ = strconv.ParseFloat(fmt.Sprintf("%.2f", value), 64)
    return math.Floor(value*factor) / factor
}
