package connect

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/macreleaser/buildtrain/pkg/testflight"
)

type appResource struct {
	ID       string `json:"id"`
	BundleID string `json:"bundleId"`
	Name     string `json:"name"`
}

type appsResponse struct {
	Apps []appResource `json:"apps"`
}

type buildResource struct {
	BuildVersion string    `json:"buildVersion"`
	UploadedDate time.Time `json:"uploadedDate"`
}

type trainResource struct {
	Version string          `json:"version"`
	Builds  []buildResource `json:"builds"`
}

type trainsResponse struct {
	Trains []trainResource `json:"trains"`
}

// FindApp returns the application with bundleID together with its build
// trains in console order. A *NotFoundError is returned if no application
// matches.
func (c *Client) FindApp(ctx context.Context, bundleID string) (*testflight.App, error) {
	var apps appsResponse
	query := url.Values{"bundleId": []string{bundleID}}
	if err := c.do(ctx, http.MethodGet, []string{"apps"}, query, nil, &apps); err != nil {
		return nil, fmt.Errorf("failed to look up app %s: %w", bundleID, err)
	}

	var match *appResource
	for i := range apps.Apps {
		if apps.Apps[i].BundleID == bundleID {
			match = &apps.Apps[i]
			break
		}
	}
	if match == nil {
		return nil, &NotFoundError{Message: fmt.Sprintf("no application with bundle identifier %s", bundleID)}
	}

	var trains trainsResponse
	if err := c.do(ctx, http.MethodGet, []string{"apps", match.ID, "trains"}, nil, nil, &trains); err != nil {
		return nil, fmt.Errorf("failed to fetch build trains of %s: %w", bundleID, err)
	}

	return &testflight.App{
		ID:       match.ID,
		BundleID: match.BundleID,
		Name:     match.Name,
		Trains:   toTrains(trains.Trains),
	}, nil
}

func toTrains(resources []trainResource) *testflight.Trains {
	trains := testflight.NewTrains()
	for _, r := range resources {
		train := &testflight.Train{Version: r.Version}
		for _, b := range r.Builds {
			train.Builds = append(train.Builds, testflight.Build{
				BuildVersion: b.BuildVersion,
				UploadedDate: b.UploadedDate,
			})
		}
		trains.Add(train)
	}
	return trains
}
