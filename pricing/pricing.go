package pricing

import (
	"math"

	"github.com/Rhymond/go-money"
)

const (
	CURRENCY = money.INR

	BASE_PRICE         int64 = 2000
	EXTRA_PERSON_PRICE int64 = 750

	// Attendees covered by BASE_PRICE.
	INCLUDED_ATTENDEES = 2
)

type StallType string

const (
	STALL_NONE StallType = "None"
	STALL_4X8  StallType = "4mx8m"
	STALL_6X12 StallType = "6mx12m"
)

var stallPrices = map[StallType]int64{
	STALL_NONE: 0,
	STALL_4X8:  6000,
	STALL_6X12: 9000,
}

// StallTypes lists the stall tiers in display order.
func StallTypes() []StallType {
	return []StallType{STALL_NONE, STALL_4X8, STALL_6X12}
}

func ParseStallType(s string) (StallType, bool) {
	t := StallType(s)
	_, ok := stallPrices[t]
	return t, ok
}

// StallPrice returns the price of a stall tier in whole rupees. Unknown tiers cost nothing.
func StallPrice(stall StallType) int64 {
	return stallPrices[stall]
}

// Total computes the payable amount in whole rupees.
func Total(attendeeCount int, stall StallType) int64 {
	extra := int64(max(0, attendeeCount-INCLUDED_ATTENDEES))

	return BASE_PRICE + extra*EXTRA_PERSON_PRICE + StallPrice(stall)
}

// ToMinorUnits converts a rupee amount into an INR money value whose Amount is in paise.
func ToMinorUnits(rupees float64) *money.Money {
	return money.New(int64(math.Round(rupees*100)), CURRENCY)
}

// Format renders a whole-rupee amount for display, e.g. "₹10,250.00".
func Format(rupees int64) string {
	return money.New(rupees*100, CURRENCY).Display()
}
