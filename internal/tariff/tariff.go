package tariff

import (
	"log"
	"strings"
)

// Tariff is a fixed plan: duration, price and traffic allowance.
type Tariff struct {
	ID             string
	Name           string
	DurationDays   int
	Price          int // minor currency units (kopecks)
	TrafficLimitGB float64
}

const DefaultID = "1month"

var catalog = map[string]Tariff{
	"1month":   {ID: "1month", Name: "1 месяц – 178 руб", DurationDays: 30, Price: 17800, TrafficLimitGB: 100},
	"3months":  {ID: "3months", Name: "3 месяца - 450 руб", DurationDays: 90, Price: 45000, TrafficLimitGB: 300},
	"6months":  {ID: "6months", Name: "6 месяцев - 690 руб", DurationDays: 180, Price: 69000, TrafficLimitGB: 600},
	"12months": {ID: "12months", Name: "12 месяцев - 840 руб", DurationDays: 365, Price: 84000, TrafficLimitGB: 1200},
}

var order = []string{"1month", "3months", "6months", "12months"}

// Resolve returns the tariff for id, falling back to the default plan for
// anything unknown. A payment callback with a bad tariff id must never be
// rejected here, so this logs and degrades instead of failing.
func Resolve(id string) Tariff {
	t, ok := catalog[strings.ToLower(id)]
	if !ok {
		log.Printf("Unknown tariff ID: %q, using default", id)
		return catalog[DefaultID]
	}
	return t
}

func Default() Tariff {
	return catalog[DefaultID]
}

// All returns every tariff in display order, shortest plan first.
func All() []Tariff {
	tariffs := make([]Tariff, 0, len(order))
	for _, id := range order {
		tariffs = append(tariffs, catalog[id])
	}
	return tariffs
}
