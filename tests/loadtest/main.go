package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numProfiles  = 100
	numCards     = 400
)

var variants = []string{"normal", "holofoil", "reverseHolofoil", "firstEditionNormal", "firstEditionHolofoil"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== CID Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Profiles: %d | Card pool: %d\n\n", numProfiles, numCards)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: Seed snapshots with POST requests
	fmt.Println("\n--- Phase 1: Seeding snapshots (POST /) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doPostSnapshot(rng)
	})

	// Phase 2: Mixed read/write load
	fmt.Println("\n--- Phase 2: Mixed load (40% POST, 60% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doPostSnapshot(rng)
		case r < 0.60:
			return doGetChecksum(rng)
		case r < 0.75:
			return doGetStatus(rng)
		case r < 0.90:
			return doPostCompare(rng)
		default:
			return doGetDevice(rng)
		}
	})

	// Phase 3: Read-heavy load
	fmt.Println("\n--- Phase 3: Read-heavy load (10% POST, 90% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doPostSnapshot(rng)
		case r < 0.40:
			return doGetChecksum(rng)
		case r < 0.70:
			return doGetStatus(rng)
		case r < 0.85:
			return doPostCompare(rng)
		case r < 0.95:
			return doGetDevice(rng)
		default:
			return doGetProfiles()
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func profileID(rng *rand.Rand) string {
	return fmt.Sprintf("profile_%d", rng.Intn(numProfiles))
}

func randomCollection(rng *rand.Rand) []map[string]interface{} {
	n := rng.Intn(20) + 1
	cards := make([]map[string]interface{}, n)
	for i := range cards {
		cards[i] = map[string]interface{}{
			"cardId":   fmt.Sprintf("sv%d-%d", rng.Intn(9)+1, rng.Intn(numCards)+1),
			"variant":  variants[rng.Intn(len(variants))],
			"quantity": rng.Intn(4) + 1,
		}
	}
	return cards
}

func doPostSnapshot(rng *rand.Rand) result {
	body := map[string]interface{}{
		"profileId":  profileID(rng),
		"collection": randomCollection(rng),
	}

	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /", resp.StatusCode, lat, resp.StatusCode != 201}
}

func doGetChecksum(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/checksum?profile=%s", baseURL, profileID(rng))
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /checksum", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	// 404 is expected for never-seeded profiles
	ok := resp.StatusCode == 200 || resp.StatusCode == 404
	return result{"GET /checksum", resp.StatusCode, lat, !ok}
}

func doGetStatus(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/status?profile=%s", baseURL, profileID(rng))
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /status", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /status", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doPostCompare(rng *rand.Rand) result {
	body := map[string]interface{}{
		"profileId":      profileID(rng),
		"serverChecksum": rng.Int63(),
		"serverStats": map[string]interface{}{
			"collectionCards": rng.Intn(20),
			"totalQuantity":   rng.Intn(60),
			"uniqueCardIds":   rng.Intn(20),
		},
	}

	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/compare", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /compare", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /compare", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetDevice(rng *rand.Rand) result {
	url := baseURL + "/device?platform=iPhone"
	if rng.Float64() < 0.5 {
		url = baseURL + "/device"
	}
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /device", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /device", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetProfiles() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/profiles")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /profiles", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /profiles", resp.StatusCode, lat, resp.StatusCode != 200}
}

func avgDuration(latencies []time.Duration) time.Duration {
	if len(latencies) == 0 {
		return 0
	}
	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}
	return sum / time.Duration(len(latencies))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.0fµs", float64(d.Microseconds()))
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
}
