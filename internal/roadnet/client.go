package roadnet

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/osm"
)

// DefaultEndpoint is the public Overpass API instance
const DefaultEndpoint = "https://overpass-api.de/api/interpreter"

// driveFilter matches the highway classes that make up the drivable network
const driveFilter = "motorway|motorway_link|trunk|trunk_link|primary|primary_link|" +
	"secondary|secondary_link|tertiary|tertiary_link|unclassified|residential|living_street"

// Client downloads road networks from an Overpass API endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new Overpass client
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// buildQuery selects the drivable ways of a named administrative area,
// with full node recursion so way geometry can be resolved
func buildQuery(area string) string {
	return fmt.Sprintf(`[out:xml][timeout:180];
area["name"=%q]["boundary"="administrative"]->.searchArea;
way(area.searchArea)["highway"~"^(%s)$"];
(._;>;);
out body;`, area, driveFilter)
}

// FetchNetwork downloads the drivable road graph for the named area
func (c *Client) FetchNetwork(ctx context.Context, area string) (*Graph, error) {
	form := url.Values{"data": {buildQuery(area)}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("roadnet: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("roadnet: failed to reach overpass endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roadnet: overpass returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("roadnet: failed to read response: %w", err)
	}

	var o osm.OSM
	if err := xml.Unmarshal(body, &o); err != nil {
		return nil, fmt.Errorf("roadnet: failed to decode overpass response: %w", err)
	}

	return BuildGraph(area, &o)
}
