package monitor

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/lboucha/linkearn/internal/repository"
)

// UrlMonitor manages periodic monitoring of destination URLs to check their accessibility.
// It maintains a state map to track URL status changes and notify when they occur.
type UrlMonitor struct {
	linkRepo    repository.LinkRepository // Repository to fetch all links from database
	interval    time.Duration             // How often to check URLs
	knownStates map[uint]bool             // Cache of previous URL states (ID -> accessible/not accessible)
	mu          sync.Mutex                // Protects concurrent access to knownStates map
	httpClient  *http.Client              // HTTP client for making requests
}

// NewUrlMonitor creates and returns a new instance of UrlMonitor.
// interval parameter determines how frequently URLs will be checked.
func NewUrlMonitor(linkRepo repository.LinkRepository, interval time.Duration) *UrlMonitor {
	return &UrlMonitor{
		linkRepo:    linkRepo,
		interval:    interval,
		knownStates: make(map[uint]bool),
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Start launches the periodic URL monitoring loop.
// This is a blocking function that runs indefinitely until the program stops.
func (m *UrlMonitor) Start() {
	log.Printf("[MONITOR] Starting URL monitor with interval of %v...", m.interval)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// Execute an immediate check on startup before waiting for the first tick
	m.checkUrls()

	for range ticker.C {
		m.checkUrls()
	}
}

// checkUrls performs a status check on all registered destination URLs.
// It compares current state with previous state and logs any changes, so the
// operator can see when a link's destination goes down or recovers.
func (m *UrlMonitor) checkUrls() {
	log.Println("[MONITOR] Starting URL status verification...")

	links, err := m.linkRepo.GetAllLinks()
	if err != nil {
		log.Printf("[MONITOR] ERROR retrieving links for monitoring: %v", err)
		return
	}

	for _, link := range links {
		currentState := m.isUrlAccessible(link.LongURL)

		m.mu.Lock()
		previousState, exists := m.knownStates[link.ID]
		m.knownStates[link.ID] = currentState
		m.mu.Unlock()

		// First sighting of this link: record the initial state only
		if !exists {
			log.Printf("[MONITOR] Initial state for link %s (%s): %s",
				link.ShortCode, link.LongURL, formatState(currentState))
			continue
		}

		if currentState != previousState {
			log.Printf("[NOTIFICATION] Link %s (%s) changed from %s to %s!",
				link.ShortCode, link.LongURL, formatState(previousState), formatState(currentState))
		}
	}
	log.Println("[MONITOR] URL status verification completed.")
}

// isUrlAccessible performs an HTTP HEAD request to check if a URL is accessible.
// Returns true if the URL responds with a 2xx or 3xx status code.
func (m *UrlMonitor) isUrlAccessible(url string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "HEAD", url, nil)
	if err != nil {
		log.Printf("[MONITOR] Error creating request for URL '%s': %v", url, err)
		return false
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		log.Printf("[MONITOR] Error accessing URL '%s': %v", url, err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

// formatState converts boolean accessibility state to a readable string.
func formatState(accessible bool) string {
	if accessible {
		return "ACCESSIBLE"
	}
	return "INACCESSIBLE"
}
