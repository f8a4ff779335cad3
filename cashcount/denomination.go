package cashcount

import "github.com/shopspring/decimal"

// Denominations is the closed set of note/coin face values the till can
// hold, largest first. The code doubles as the snapshot map key and as the
// decimal face value. The set is fixed at deploy time.
var Denominations = []string{
    "1000", "500", "200", "100", "50", "20", "10", "5", "2", "1",
    "0.50", "0.20", "0.10", "0.01",
}

var faceValues = buildFaceValues()

func buildFaceValues() map[string]decimal.Decimal {
    m := make(map[string]decimal.Decimal, len(Denominations))
    for _, code := range Denominations {
        m[code] = decimal.RequireFromString(code)
    }
    return m
}

// FaceValue returns the monetary value of a denomination code. The bool is
// false for codes outside the fixed set.
func FaceValue(code string) (decimal.Decimal, bool) {
    v, ok := faceValues[code]
    return v, ok
}
