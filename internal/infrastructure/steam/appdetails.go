package steam

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// AppDetails is the store view of one catalog entry.
type AppDetails struct {
	AppID  int64
	Name   string
	IsFree bool
	// Price is the final (discounted) price in major units; 0 when the entry
	// is not priced in the configured region.
	Price float64
}

func (c *Client) AppDetails(ctx context.Context, appID int64) (AppDetails, error) {
	id := strconv.FormatInt(appID, 10)

	query := url.Values{}
	query.Set("cc", c.cfg.CountryCode)
	query.Set("appids", id)

	resp, err := c.fetcher.Get(ctx, c.cfg.StoreURL+"/api/appdetails?"+query.Encode(), c.forever())
	if err != nil {
		return AppDetails{}, fmt.Errorf("steam.Client.AppDetails: %w", err)
	}

	var envelope appDetailsEnvelope

	if err = json.Unmarshal(resp.Body, &envelope); err != nil {
		return AppDetails{}, fmt.Errorf("steam.Client.AppDetails: %w: %w", ErrMalformedUpstream, err)
	}

	entry, ok := envelope[id]
	if !ok || entry.Data == nil {
		return AppDetails{}, fmt.Errorf("steam.Client.AppDetails: %w: no data for app %d", ErrMalformedUpstream, appID)
	}

	details := AppDetails{
		AppID:  appID,
		Name:   entry.Data.Name,
		IsFree: entry.Data.IsFree,
	}

	if !details.IsFree && entry.Data.PriceOverview != nil {
		details.Price = entry.Data.PriceOverview.Final.Major()
	}

	return details, nil
}
