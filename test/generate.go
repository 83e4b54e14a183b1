package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

var (
	header   = []string{"Delivery Person ID", "Customer ID", "Delivery Days", "Monthly Billing (Estimated)", "Weekly Billing (Estimated)", "Individual Cost (Estimated)", "Notes"}
	weekdays = []string{"M", "T", "W", "Th", "F"}
)

// Writes a deliveries.csv fixture. The seed is fixed so every run produces
// the same file.
func main() {
	rng := rand.New(rand.NewSource(1))

	deliveriesBytes := new(bytes.Buffer)
	deliveriesCSV := csv.NewWriter(deliveriesBytes)
	check(deliveriesCSV.Write(header))
	for i := 0; i < 1000; i++ {
		check(deliveriesCSV.Write(makeRow(rng)))
	}
	deliveriesCSV.Flush()
	check(deliveriesCSV.Error())

	check(os.WriteFile("deliveries.csv", deliveriesBytes.Bytes(), 0644))
}

func makeRow(rng *rand.Rand) []string {
	person := fmt.Sprintf("P%03d", rng.Intn(25)+1)
	customer := fmt.Sprintf("C%04d", rng.Intn(200)+1)

	switch n := rng.Intn(10); {
	case n < 2:
		return []string{person, customer, "Monthly", money(rng, 50, 1500), "", "", ""}
	case n < 4:
		return []string{person, customer, "Weekly", "", money(rng, 10, 120), "", ""}
	case n < 5:
		// no days recorded; billed per visit with nothing delivered
		return []string{person, customer, "", "", "", money(rng, 5, 40), "missing schedule"}
	default:
		return []string{person, customer, days(rng), "", "", money(rng, 5, 40), ""}
	}
}

func days(rng *rand.Rand) string {
	var picked []string
	for _, day := range weekdays {
		if rng.Intn(2) == 0 {
			picked = append(picked, day)
		}
	}
	if len(picked) == 0 {
		picked = append(picked, weekdays[rng.Intn(len(weekdays))])
	}
	return strings.Join(picked, ",")
}

// money returns a dollar amount in [lo, hi) formatted the way the delivery
// logs are exported, with a thousands separator when needed.
func money(rng *rand.Rand, lo, hi int) string {
	cents := lo*100 + rng.Intn((hi-lo)*100)
	dollars := fmt.Sprintf("%d", cents/100)
	if len(dollars) > 3 {
		dollars = dollars[:len(dollars)-3] + "," + dollars[len(dollars)-3:]
	}
	return fmt.Sprintf("$%s.%02d", dollars, cents%100)
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
