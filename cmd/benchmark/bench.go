// Load test for the query API. Expects a server already running; point it
// at the base URL and it hammers the three read endpoints.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of a running server")
	duration := flag.Duration("duration", 10*time.Second, "Duration of the test")
	rate := flag.Int("rate", 50, "Requests per second")
	flag.Parse()

	waitForApp(*baseURL + "/health")

	paths := []string{
		"/api/models",
		"/api/models/search?q=claude",
		"/api/models/search?q=gpt",
		"/api/get_providers?q=anthropic/claude-3-sonnet",
	}

	targeter := func(t *vegeta.Target) error {
		t.Method = http.MethodGet
		t.URL = *baseURL + paths[rand.Intn(len(paths))]
		return nil
	}

	attacker := vegeta.NewAttacker()
	pacer := vegeta.Rate{Freq: *rate, Per: time.Second}

	fmt.Printf("Running benchmark: %s duration, %d req/s against %s\n", *duration, *rate, *baseURL)

	var metrics vegeta.Metrics
	for res := range attacker.Attack(targeter, pacer, *duration, "query-api") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Printf("Requests:     %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.2f%%\n", metrics.Success*100)
	fmt.Printf("Mean latency: %s\n", metrics.Latencies.Mean)
	fmt.Printf("P95 latency:  %s\n", metrics.Latencies.P95)
	fmt.Printf("P99 latency:  %s\n", metrics.Latencies.P99)
	fmt.Printf("Max latency:  %s\n", metrics.Latencies.Max)
	if len(metrics.Errors) > 0 {
		fmt.Printf("Errors: %v\n", metrics.Errors)
	}
}

func waitForApp(healthURL string) {
	client := http.Client{Timeout: time.Second}
	for i := 0; i < 30; i++ {
		resp, err := client.Get(healthURL)
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	log.Fatalf("Server did not become ready at %s", healthURL)
}
