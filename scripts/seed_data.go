//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/example/carpool/internal/config"
	"github.com/example/carpool/internal/database"
	"github.com/example/carpool/internal/models"
	"github.com/example/carpool/internal/repository"
	"github.com/example/carpool/internal/service"
)

// Bangalore coordinates
const (
	baseLat = 12.9716
	baseLon = 77.5946
)

var (
	firstNames = []string{"Rahul", "Priya", "Amit", "Sneha", "Vikram", "Anita", "Raj", "Neha", "Suresh", "Kavita",
		"Arun", "Deepa", "Kiran", "Meera", "Sanjay", "Ritu", "Vijay", "Pooja", "Manoj", "Swati"}
	lastNames = []string{"Kumar", "Sharma", "Patel", "Singh", "Reddy", "Rao", "Gupta", "Joshi", "Nair", "Menon"}
	genders   = []string{"male", "female", "other"}

	localities = []string{"Koramangala", "Indiranagar", "Whitefield", "HSR Layout", "Jayanagar",
		"Electronic City", "Hebbal", "Marathahalli", "BTM Layout", "Malleshwaram"}
)

func main() {
	rand.Seed(time.Now().UnixNano())

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.DatabaseURL, cfg.DBMaxConnections, cfg.DBMaxIdleConnections)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	userRepo := repository.NewUserRepository(db.DB)
	rideRepo := repository.NewRideRepository(db.DB)
	requestRepo := repository.NewRideRequestRepository(db.DB)
	pricing := service.NewPricingService(cfg.FuelPricePerLitre, cfg.MileageKmPerLitre)

	// Create users
	log.Println("Creating 50 users...")
	users := make([]*models.User, 0, 50)
	for i := 0; i < 50; i++ {
		user := &models.User{
			Firstname: firstNames[rand.Intn(len(firstNames))],
			Lastname:  lastNames[rand.Intn(len(lastNames))],
			Age:       18 + rand.Intn(45),
			Gender:    genders[rand.Intn(len(genders))],
			Phone:     fmt.Sprintf("98%08d", rand.Intn(100000000)),
		}

		if err := userRepo.Create(ctx, user); err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	if len(users) == 0 {
		log.Fatal("No users created, aborting")
	}

	// Create rides with the first half of the users as drivers
	log.Println("Creating 40 rides...")
	rides := make([]*models.Ride, 0, 40)
	for i := 0; i < 40; i++ {
		driver := users[rand.Intn(len(users)/2)]

		fromLat := baseLat + (rand.Float64()-0.5)*0.2
		fromLon := baseLon + (rand.Float64()-0.5)*0.2
		toLat := baseLat + (rand.Float64()-0.5)*0.2
		toLon := baseLon + (rand.Float64()-0.5)*0.2
		seats := 1 + rand.Intn(4)

		distanceKm := pricing.EstimateDistanceKm(fromLat, fromLon, toLat, toLon)

		ride := &models.Ride{
			DriverID:     driver.ID,
			FromName:     localities[rand.Intn(len(localities))],
			FromLat:      &fromLat,
			FromLon:      &fromLon,
			ToName:       localities[rand.Intn(len(localities))],
			ToLat:        &toLat,
			ToLon:        &toLon,
			RideDate:     time.Now().AddDate(0, 0, 1+rand.Intn(14)).Format("2006-01-02"),
			RideTime:     fmt.Sprintf("%02d:%02d", 6+rand.Intn(16), rand.Intn(4)*15),
			TotalSeats:   seats,
			PricePerSeat: pricing.PricePerSeat(distanceKm, seats),
			DriverName:   driver.DisplayName(),
			DriverPhone:  driver.Phone,
			DriverAge:    driver.Age,
			DriverGender: driver.Gender,
		}

		if err := rideRepo.Create(ctx, ride); err != nil {
			log.Printf("Failed to create ride: %v", err)
			continue
		}
		rides = append(rides, ride)
	}
	log.Printf("Created %d rides", len(rides))

	// Create pending requests from the second half of the users
	log.Println("Creating 60 ride requests...")
	created := 0
	for i := 0; i < 60; i++ {
		requester := users[len(users)/2+rand.Intn(len(users)/2)]
		ride := rides[rand.Intn(len(rides))]
		if ride.DriverID == requester.ID {
			continue
		}

		existing, err := requestRepo.GetOutstandingByRideAndRequester(ctx, ride.ID, requester.ID)
		if err != nil || existing != nil {
			continue
		}

		req := &models.RideRequest{
			RideID:        ride.ID,
			DriverID:      ride.DriverID,
			RequesterID:   requester.ID,
			Status:        models.RequestStatusPending,
			DriverName:    ride.DriverName,
			RequesterName: requester.DisplayName(),
			Pickup:        ride.FromName,
			Drop:          ride.ToName,
			RideDate:      ride.RideDate,
			RideTime:      ride.RideTime,
		}

		if err := requestRepo.Create(ctx, req); err != nil {
			log.Printf("Failed to create request: %v", err)
			continue
		}
		created++
	}
	log.Printf("Created %d ride requests", created)

	log.Println("Seed complete")
}
