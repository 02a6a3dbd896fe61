// Package usecase contains application-level services.
package usecase

import (
	"errors"
	"fmt"

	"github.com/tesso57/feedreader/internal/domain/subscription"
)

// ErrFeedIndex is returned when a feed index does not address a configured feed.
var ErrFeedIndex = errors.New("feed index out of range")

// SubscriptionRepository abstracts persistence for feed subscriptions.
type SubscriptionRepository interface {
	List() ([]subscription.Source, error)
	Add(source subscription.Source) error
	Remove(index int) error
}

// SubscriptionService provides subscription-related operations.
type SubscriptionService struct {
	Repo SubscriptionRepository
}

// NewSubscriptionService constructs a SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository) SubscriptionService {
	return SubscriptionService{Repo: repo}
}

// List returns all subscribed feeds.
func (s SubscriptionService) List() ([]subscription.Source, error) {
	return s.Repo.List()
}

// Get returns the feed at index.
func (s SubscriptionService) Get(index int) (subscription.Source, error) {
	feeds, err := s.Repo.List()
	if err != nil {
		return subscription.Source{}, err
	}
	if index < 0 || index >= len(feeds) {
		return subscription.Source{}, fmt.Errorf("%w: %d (have %d)", ErrFeedIndex, index, len(feeds))
	}
	return feeds[index], nil
}

// Add registers a new feed and returns the updated list.
func (s SubscriptionService) Add(source subscription.Source) ([]subscription.Source, error) {
	source = source.Normalize()
	if err := source.Validate(); err != nil {
		return nil, err
	}
	feeds, err := s.Repo.List()
	if err != nil {
		return nil, err
	}
	for _, existing := range feeds {
		if existing.URL == source.URL {
			return nil, fmt.Errorf("feed %q is already subscribed", source.URL)
		}
	}
	if err := s.Repo.Add(source); err != nil {
		return nil, err
	}
	return s.Repo.List()
}

// Remove deletes a feed by index and returns the updated list.
func (s SubscriptionService) Remove(index int) ([]subscription.Source, error) {
	if err := s.Repo.Remove(index); err != nil {
		return nil, err
	}
	return s.Repo.List()
}

// Check verifies that feeds are defined and each has a name and URL.
func (s SubscriptionService) Check() error {
	feeds, err := s.Repo.List()
	if err != nil {
		return err
	}
	return subscription.Validate(feeds)
}
