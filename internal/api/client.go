// Package api exposes the generic data-access surface the presentation layer
// consumes: typed get/create/update/delete over accounts and interest zones,
// plus a FetchZones call with a short client-side freshness window.
package api

import (
	"fmt"
	"sync"
	"time"

	"mwehrli/finview/internal/models"
	"mwehrli/finview/internal/parsererror"
	"mwehrli/finview/internal/storage"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// DefaultZoneCacheTTL is the freshness window for cached zone lists.
const DefaultZoneCacheTTL = 30 * time.Second

type zoneCacheEntry struct {
	zones     []models.InterestZone
	fetchedAt time.Time
}

// Client is the data-access client backed by the YAML store.
type Client struct {
	store    *storage.Store
	zoneTTL  time.Duration
	now      func() time.Time
	mu       sync.Mutex
	zoneByID map[string]zoneCacheEntry
}

// Option configures a Client.
type Option func(*Client)

// WithZoneCacheTTL overrides the zone cache freshness window.
func WithZoneCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.zoneTTL = ttl }
}

// WithClock overrides the clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a data-access client over the given store.
func NewClient(store *storage.Store, opts ...Option) *Client {
	c := &Client{
		store:    store,
		zoneTTL:  DefaultZoneCacheTTL,
		now:      time.Now,
		zoneByID: make(map[string]zoneCacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListAccounts returns every tracked account.
func (c *Client) ListAccounts() ([]models.Account, error) {
	return c.store.LoadAccounts()
}

// GetAccount returns the account with the given ID, or the first account
// whose name matches when no ID matches.
func (c *Client) GetAccount(idOrName string) (models.Account, error) {
	accounts, err := c.store.LoadAccounts()
	if err != nil {
		return models.Account{}, err
	}
	for _, a := range accounts {
		if a.ID == idOrName {
			return a, nil
		}
	}
	for _, a := range accounts {
		if a.Name == idOrName {
			return a, nil
		}
	}
	return models.Account{}, &parsererror.NotFoundError{Kind: "account", ID: idOrName}
}

// CreateAccount persists a new account.
func (c *Client) CreateAccount(account models.Account) (models.Account, error) {
	if !account.Kind.IsValid() {
		return models.Account{}, fmt.Errorf("unknown account kind: %s", account.Kind)
	}

	accounts, err := c.store.LoadAccounts()
	if err != nil {
		return models.Account{}, err
	}
	accounts = append(accounts, account)
	if err := c.store.SaveAccounts(accounts); err != nil {
		return models.Account{}, err
	}

	log.WithFields(logrus.Fields{
		"account": account.Name,
		"kind":    account.Kind,
	}).Info("Created account")
	return account, nil
}

// UpdateAccount replaces the stored account with the same ID.
func (c *Client) UpdateAccount(account models.Account) error {
	accounts, err := c.store.LoadAccounts()
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].ID == account.ID {
			account.CreatedAt = accounts[i].CreatedAt
			account.UpdatedAt = c.now()
			accounts[i] = account
			return c.store.SaveAccounts(accounts)
		}
	}
	return &parsererror.NotFoundError{Kind: "account", ID: account.ID}
}

// DeleteAccount removes an account and its interest zones.
func (c *Client) DeleteAccount(id string) error {
	accounts, err := c.store.LoadAccounts()
	if err != nil {
		return err
	}
	kept := accounts[:0]
	found := false
	for _, a := range accounts {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return &parsererror.NotFoundError{Kind: "account", ID: id}
	}
	if err := c.store.SaveAccounts(kept); err != nil {
		return err
	}

	// Zones are owned by their account; drop them with it.
	zones, err := c.store.LoadZones()
	if err != nil {
		return err
	}
	keptZones := zones[:0]
	for _, z := range zones {
		if z.AccountID != id {
			keptZones = append(keptZones, z)
		}
	}
	c.invalidateZones(id)
	return c.store.SaveZones(keptZones)
}

// FetchZones returns the interest zones owned by an account, served from a
// short-lived cache while fresh.
func (c *Client) FetchZones(accountID string) ([]models.InterestZone, error) {
	c.mu.Lock()
	entry, ok := c.zoneByID[accountID]
	c.mu.Unlock()
	if ok && c.now().Sub(entry.fetchedAt) < c.zoneTTL {
		log.WithField("account", accountID).Debug("Serving zones from cache")
		return entry.zones, nil
	}

	zones, err := c.store.LoadZonesForAccount(accountID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.zoneByID[accountID] = zoneCacheEntry{zones: zones, fetchedAt: c.now()}
	c.mu.Unlock()
	return zones, nil
}

// CreateZone persists a new interest zone for an account.
func (c *Client) CreateZone(zone models.InterestZone) error {
	if zone.AccountID == "" {
		return fmt.Errorf("interest zone requires an account id")
	}
	zones, err := c.store.LoadZones()
	if err != nil {
		return err
	}
	zones = append(zones, zone)
	if err := c.store.SaveZones(zones); err != nil {
		return err
	}
	c.invalidateZones(zone.AccountID)
	return nil
}

// DeleteZones removes every interest zone owned by an account.
func (c *Client) DeleteZones(accountID string) error {
	zones, err := c.store.LoadZones()
	if err != nil {
		return err
	}
	kept := zones[:0]
	for _, z := range zones {
		if z.AccountID != accountID {
			kept = append(kept, z)
		}
	}
	if err := c.store.SaveZones(kept); err != nil {
		return err
	}
	c.invalidateZones(accountID)
	return nil
}

func (c *Client) invalidateZones(accountID string) {
	c.mu.Lock()
	delete(c.zoneByID, accountID)
	c.mu.Unlock()
}
