//go:build ignore

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL = "http://localhost:8080"
	baseLat = 12.9716
	baseLon = 77.5946
)

type Stats struct {
	TotalRequests   int64
	SuccessRequests int64
	FailedRequests  int64
	TotalLatency    int64
	MinLatency      int64
	MaxLatency      int64
}

func main() {
	rand.Seed(time.Now().UnixNano())

	fmt.Println("Carpool Load Test")
	fmt.Println("=================")

	fmt.Println("\n1. Creating test data...")
	userIDs, rideIDs := createTestData()

	if len(userIDs) == 0 || len(rideIDs) == 0 {
		log.Fatal("Failed to create test data")
	}

	fmt.Printf("Created %d users and %d rides\n", len(userIDs), len(rideIDs))

	fmt.Println("\n2. Testing Ride Search (500 searches, 25 concurrent)...")
	stats := testRideSearch(500, 25)
	printStats("Ride Search", stats)

	fmt.Println("\n3. Testing Ride Creation (100 rides, 10 concurrent)...")
	stats = testRideCreation(userIDs, 100, 10)
	printStats("Ride Creation", stats)

	fmt.Println("\n4. Testing Seat Requests (200 requests, 20 concurrent)...")
	stats = testSeatRequests(userIDs, rideIDs, 200, 20)
	printStats("Seat Requests", stats)

	fmt.Println("\nLoad test completed!")
}

func createTestData() ([]string, []string) {
	userIDs := make([]string, 0)
	rideIDs := make([]string, 0)

	for i := 0; i < 20; i++ {
		user := map[string]interface{}{
			"firstname": fmt.Sprintf("Load%d", i),
			"lastname":  "Tester",
			"age":       20 + rand.Intn(40),
			"gender":    []string{"male", "female", "other"}[rand.Intn(3)],
			"phone":     fmt.Sprintf("98%08d", rand.Intn(100000000)),
		}
		body, _ := json.Marshal(user)
		resp, err := http.Post(baseURL+"/v1/users", "application/json", bytes.NewBuffer(body))
		if err != nil {
			continue
		}

		if resp.StatusCode == 201 {
			var result map[string]interface{}
			json.NewDecoder(resp.Body).Decode(&result)
			if id, ok := result["id"].(string); ok {
				userIDs = append(userIDs, id)
			}
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	// Post a handful of rides owned by the first few users
	for i := 0; i < 10 && i < len(userIDs); i++ {
		ride := map[string]interface{}{
			"from": fmt.Sprintf("Origin %d", i),
			"to":   fmt.Sprintf("Destination %d", i),
			"from_coords": map[string]float64{
				"lat": baseLat + (rand.Float64()-0.5)*0.1,
				"lon": baseLon + (rand.Float64()-0.5)*0.1,
			},
			"to_coords": map[string]float64{
				"lat": baseLat + (rand.Float64()-0.5)*0.1,
				"lon": baseLon + (rand.Float64()-0.5)*0.1,
			},
			"date":  time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
			"time":  "09:00",
			"seats": 4,
		}
		body, _ := json.Marshal(ride)

		req, _ := http.NewRequest("POST", baseURL+"/v1/rides", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", userIDs[i])
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			continue
		}

		if resp.StatusCode == 201 {
			var result map[string]interface{}
			json.NewDecoder(resp.Body).Decode(&result)
			if id, ok := result["id"].(string); ok {
				rideIDs = append(rideIDs, id)
			}
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	return userIDs, rideIDs
}

func testRideSearch(numRequests, concurrency int) *Stats {
	stats := &Stats{MinLatency: int64(^uint64(0) >> 1)}
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		semaphore <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-semaphore }()

			search := map[string]interface{}{
				"from": map[string]float64{
					"lat": baseLat + (rand.Float64()-0.5)*0.1,
					"lon": baseLon + (rand.Float64()-0.5)*0.1,
				},
				"to": map[string]float64{
					"lat": baseLat + (rand.Float64()-0.5)*0.1,
					"lon": baseLon + (rand.Float64()-0.5)*0.1,
				},
			}
			body, _ := json.Marshal(search)

			start := time.Now()
			resp, err := http.Post(baseURL+"/v1/rides/search", "application/json", bytes.NewBuffer(body))
			latency := time.Since(start).Milliseconds()

			record(stats, latency, err == nil && resp != nil && resp.StatusCode == 200)
			drain(resp)
		}()
	}

	wg.Wait()
	return stats
}

func testRideCreation(userIDs []string, numRequests, concurrency int) *Stats {
	stats := &Stats{MinLatency: int64(^uint64(0) >> 1)}
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(idx int, userID string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			ride := map[string]interface{}{
				"from": fmt.Sprintf("Load Origin %d", idx),
				"to":   fmt.Sprintf("Load Destination %d", idx),
				"from_coords": map[string]float64{
					"lat": baseLat + (rand.Float64()-0.5)*0.1,
					"lon": baseLon + (rand.Float64()-0.5)*0.1,
				},
				"to_coords": map[string]float64{
					"lat": baseLat + (rand.Float64()-0.5)*0.1,
					"lon": baseLon + (rand.Float64()-0.5)*0.1,
				},
				"date":  time.Now().AddDate(0, 0, 1+rand.Intn(14)).Format("2006-01-02"),
				"time":  "09:00",
				"seats": 1 + rand.Intn(4),
			}
			body, _ := json.Marshal(ride)

			req, _ := http.NewRequest("POST", baseURL+"/v1/rides", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-User-ID", userID)
			req.Header.Set("Idempotency-Key", fmt.Sprintf("load-test-ride-%d-%d", idx, time.Now().UnixNano()))

			start := time.Now()
			resp, err := http.DefaultClient.Do(req)
			latency := time.Since(start).Milliseconds()

			record(stats, latency, err == nil && resp != nil && resp.StatusCode == 201)
			drain(resp)
		}(i, userIDs[rand.Intn(len(userIDs))])
	}

	wg.Wait()
	return stats
}

func testSeatRequests(userIDs, rideIDs []string, numRequests, concurrency int) *Stats {
	stats := &Stats{MinLatency: int64(^uint64(0) >> 1)}
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(userID, rideID string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			payload := map[string]string{"ride_id": rideID}
			body, _ := json.Marshal(payload)

			req, _ := http.NewRequest("POST", baseURL+"/v1/requests", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-User-ID", userID)

			start := time.Now()
			resp, err := http.DefaultClient.Do(req)
			latency := time.Since(start).Milliseconds()

			// Duplicate and self-request rejections are expected under load.
			ok := err == nil && resp != nil &&
				(resp.StatusCode == 201 || resp.StatusCode == 409 || resp.StatusCode == 400)
			record(stats, latency, ok)
			drain(resp)
		}(userIDs[rand.Intn(len(userIDs))], rideIDs[rand.Intn(len(rideIDs))])
	}

	wg.Wait()
	return stats
}

func record(stats *Stats, latency int64, ok bool) {
	atomic.AddInt64(&stats.TotalRequests, 1)
	atomic.AddInt64(&stats.TotalLatency, latency)

	if !ok {
		atomic.AddInt64(&stats.FailedRequests, 1)
		return
	}
	atomic.AddInt64(&stats.SuccessRequests, 1)

	for {
		old := atomic.LoadInt64(&stats.MinLatency)
		if latency >= old || atomic.CompareAndSwapInt64(&stats.MinLatency, old, latency) {
			break
		}
	}
	for {
		old := atomic.LoadInt64(&stats.MaxLatency)
		if latency <= old || atomic.CompareAndSwapInt64(&stats.MaxLatency, old, latency) {
			break
		}
	}
}

func drain(resp *http.Response) {
	if resp == nil {
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func printStats(name string, stats *Stats) {
	total := atomic.LoadInt64(&stats.TotalRequests)
	if total == 0 {
		fmt.Printf("%s: no requests recorded\n", name)
		return
	}

	avgLatency := atomic.LoadInt64(&stats.TotalLatency) / total
	fmt.Printf("\n%s Results:\n", name)
	fmt.Printf("  Total:      %d\n", total)
	fmt.Printf("  Success:    %d (%.1f%%)\n", stats.SuccessRequests, float64(stats.SuccessRequests)/float64(total)*100)
	fmt.Printf("  Failed:     %d\n", stats.FailedRequests)
	fmt.Printf("  Avg Latency: %dms\n", avgLatency)
	fmt.Printf("  Min Latency: %dms\n", stats.MinLatency)
	fmt.Printf("  Max Latency: %dms\n", stats.MaxLatency)
}
