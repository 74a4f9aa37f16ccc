// Command load-sample-data wipes the travel_options table and fills it with a
// randomized sample catalog for local development.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/waytrip/travel-booking-backend/internal/config"
	"github.com/waytrip/travel-booking-backend/internal/database"
	"github.com/waytrip/travel-booking-backend/internal/models"
)

var cities = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
	"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
	"Austin", "Jacksonville", "Fort Worth", "Columbus", "Charlotte",
	"San Francisco", "Indianapolis", "Seattle", "Denver", "Washington",
	"Boston", "El Paso", "Nashville", "Detroit", "Portland", "Memphis",
	"Oklahoma City", "Las Vegas", "Louisville", "Baltimore", "Milwaukee",
}

type travelKind struct {
	travelType models.TravelType
	codePrefix string
	basePrice  int
	baseSeats  int
}

var travelKinds = []travelKind{
	{models.TravelTypeFlight, "FL", 200, 50},
	{models.TravelTypeTrain, "TR", 80, 100},
	{models.TravelTypeBus, "BU", 40, 150},
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewTravelOptionRepository(db)

	// Clear existing data
	if err := repo.DeleteAll(); err != nil {
		logger.Fatalf("Failed to clear travel options: %v", err)
	}

	counts := make(map[models.TravelType]int)
	now := time.Now()

	for i := 0; i < 30; i++ {
		source := cities[rand.Intn(len(cities))]
		destination := source
		for destination == source {
			destination = cities[rand.Intn(len(cities))]
		}

		kind := travelKinds[rand.Intn(len(travelKinds))]

		departure := now.Add(
			time.Duration(1+rand.Intn(30))*24*time.Hour +
				time.Duration(rand.Intn(24))*time.Hour +
				time.Duration(rand.Intn(60))*time.Minute,
		)

		price := decimal.NewFromInt(int64(kind.basePrice + rand.Intn(301)))

		seats := kind.baseSeats + rand.Intn(51) - 20
		if seats < 10 {
			seats = 10
		}

		option := &models.TravelOption{
			TravelCode:     fmt.Sprintf("%s%03d", kind.codePrefix, i+1),
			TravelType:     kind.travelType,
			Source:         source,
			Destination:    destination,
			DepartureTime:  departure,
			Price:          price,
			AvailableSeats: seats,
		}

		if err := repo.Create(option); err != nil {
			logger.Fatalf("Failed to create travel option %s: %v", option.TravelCode, err)
		}
		counts[kind.travelType]++
	}

	logger.WithFields(logrus.Fields{
		"flights": counts[models.TravelTypeFlight],
		"trains":  counts[models.TravelTypeTrain],
		"buses":   counts[models.TravelTypeBus],
	}).Info("Sample travel options loaded")
}
