package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/edpilots/psibot/internal/model"
)

// EDSMClient resolves star systems that are not yet cached in the store.
type EDSMClient struct {
	baseURL string
	client  *http.Client
}

func NewEDSMClient(baseURL string) *EDSMClient {
	return &EDSMClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type edsmSystem struct {
	Name   string `json:"name"`
	ID     int64  `json:"id"`
	ID64   int64  `json:"id64"`
	Coords struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
	} `json:"coords"`
	CoordsLocked  bool   `json:"coordsLocked"`
	RequirePermit bool   `json:"requirePermit"`
	PermitName    string `json:"permitName"`
	Information   struct {
		Allegiance string `json:"allegiance"`
		Government string `json:"government"`
		Population int64  `json:"population"`
		Security   string `json:"security"`
		Economy    string `json:"economy"`
	} `json:"information"`
}

func (c *EDSMClient) Systems(ctx context.Context, names []string) ([]model.System, error) {
	params := url.Values{}
	params.Set("showCoordinates", "1")
	params.Set("showId", "1")
	params.Set("showPermit", "1")
	params.Set("showInformation", "1")
	for _, name := range names {
		params.Add("systemName[]", name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api-v1/systems?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("edsm: unexpected status %d", resp.StatusCode)
	}

	var found []edsmSystem
	if err := json.NewDecoder(resp.Body).Decode(&found); err != nil {
		return nil, fmt.Errorf("edsm: decoding response: %w", err)
	}

	systems := make([]model.System, 0, len(found))
	for _, s := range found {
		systems = append(systems, model.System{
			UpperName:     strings.ToUpper(s.Name),
			Name:          s.Name,
			EDSMID:        s.ID,
			ID64:          s.ID64,
			X:             s.Coords.X,
			Y:             s.Coords.Y,
			Z:             s.Coords.Z,
			RequirePermit: s.RequirePermit,
			PermitName:    s.PermitName,
			Allegiance:    s.Information.Allegiance,
			Government:    s.Information.Government,
			Population:    s.Information.Population,
			Security:      s.Information.Security,
			Economy:       s.Information.Economy,
			Popularity:    1,
			CoordsLocked:  s.CoordsLocked,
		})
	}

	return systems, nil
}
