package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SamuelLeutner/pre-enrollment/config"
	"github.com/SamuelLeutner/pre-enrollment/enrollment"
	"github.com/SamuelLeutner/pre-enrollment/models"
)

// FetchEnrollments reads the four collections in parallel and joins them.
// The fetch is all-or-nothing: if any collection fails, no record is
// returned.
func (c *Client) FetchEnrollments(ctx context.Context) ([]models.EnrollmentRecord, error) {
	log.Println("Starting enrollment fetch (students, mothers, fathers, observations)...")
	startTime := time.Now()

	var (
		students     []models.Student
		mothers      []models.Mother
		fathers      []models.Father
		observations []models.Observation
	)

	// one rejected session is reported once, however many reads saw it
	var unauthorized sync.Once
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		students, err = fetchCollection[models.Student](gctx, c, config.EndpointStudents)
		if isUnauthorized(err) {
			unauthorized.Do(c.handleUnauthorized)
		}
		return err
	})
	g.Go(func() (err error) {
		mothers, err = fetchCollection[models.Mother](gctx, c, config.EndpointMothers)
		if isUnauthorized(err) {
			unauthorized.Do(c.handleUnauthorized)
		}
		return err
	})
	g.Go(func() (err error) {
		fathers, err = fetchCollection[models.Father](gctx, c, config.EndpointFathers)
		if isUnauthorized(err) {
			unauthorized.Do(c.handleUnauthorized)
		}
		return err
	})
	g.Go(func() (err error) {
		observations, err = fetchCollection[models.Observation](gctx, c, config.EndpointObservations)
		if isUnauthorized(err) {
			unauthorized.Do(c.handleUnauthorized)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		log.Printf("Enrollment fetch failed: %v", err)
		return nil, fmt.Errorf("failed to fetch enrollment collections: %w", err)
	}

	records := enrollment.Join(students, mothers, fathers, observations)
	log.Printf("Enrollment fetch completed: %d records in %.1fs (mothers: %d, fathers: %d, observations: %d)",
		len(records), time.Since(startTime).Seconds(), len(mothers), len(fathers), len(observations))
	return records, nil
}

func fetchCollection[T any](ctx context.Context, c *Client, name string) ([]T, error) {
	path := c.Config.ReadPath(name)
	body, err := c.MakeRequest(ctx, http.MethodGet, c.Config.APIBase+path, c.headers(), nil, c.Config.MaxRetries)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("fetching %s cancelled: %w", path, ctx.Err())
		}
		return nil, fmt.Errorf("error fetching %s: %w", path, err)
	}

	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("error decoding %s response: %w", path, err)
	}
	log.Printf("<- %s: %d items", path, len(items))
	return items, nil
}
