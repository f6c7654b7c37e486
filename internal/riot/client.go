package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"elo-tracker/internal/cache"
	"elo-tracker/internal/config"
	"elo-tracker/internal/constants"
	"elo-tracker/internal/domain"
	"elo-tracker/internal/region"

	"github.com/valyala/fasthttp"
)

// SoloQueue is the only queue the tracker reports on.
const SoloQueue = "RANKED_SOLO_5x5"

// LookupError is a non-success answer from the Riot API. Auth failures and
// unknown accounts land here too; none of them are retried.
type LookupError struct {
	StatusCode int
	Status     string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("failed to fetch account data: %s", e.Status)
}

// Client talks to the Riot account and league endpoints. The API key is
// injected here so tests can run against a fake server with a dummy key.
type Client struct {
	apiKey string
	client *fasthttp.Client
	cache  *cache.Cache

	// baseURL replaces the per-host Riot URL scheme when set; tests point
	// it at an httptest server.
	baseURL string
}

func NewClient(cfg *config.Config, c *cache.Cache) *Client {
	return &Client{
		apiKey: cfg.RiotAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		cache: c,
	}
}

// host builds the shard- or macro-region-qualified API host.
func (c *Client) host(sub string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf("https://%s.api.riotgames.com", sub)
}

// Account is a resolved Riot account.
type Account struct {
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
	PUUID    string `json:"puuid"`
}

// LeagueEntry is one ranked-queue standing as returned by the league
// endpoint.
type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
}

// AccountByRiotID resolves a gameName/tagLine pair on the given
// macro-region.
func (c *Client) AccountByRiotID(ctx context.Context, mr region.MacroRegion, gameName, tagLine string) (*Account, error) {
	endpoint := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s?api_key=%s",
		c.host(string(mr)), url.PathEscape(gameName), url.PathEscape(tagLine), c.apiKey)

	acc, err := doRequest[Account](ctx, c, endpoint)
	if err != nil {
		return nil, err
	}
	if acc.PUUID == "" || acc.GameName == "" || acc.TagLine == "" {
		return nil, &LookupError{StatusCode: fasthttp.StatusOK, Status: "incomplete account payload"}
	}
	return acc, nil
}

// AccountByPUUID resolves an account by PUUID on the given macro-region.
// This is the raw fetch; DisplayName adds the cache in front.
func (c *Client) AccountByPUUID(ctx context.Context, mr region.MacroRegion, puuid string) (*Account, error) {
	endpoint := fmt.Sprintf("%s/riot/account/v1/accounts/by-puuid/%s?api_key=%s",
		c.host(string(mr)), url.PathEscape(puuid), c.apiKey)

	acc, err := doRequest[Account](ctx, c, endpoint)
	if err != nil {
		return nil, err
	}
	if acc.GameName == "" || acc.TagLine == "" {
		return nil, &LookupError{StatusCode: fasthttp.StatusOK, Status: "incomplete account payload"}
	}
	return acc, nil
}

// DisplayName returns "GameName#TagLine" for a PUUID, served from the
// cache when useCache is set. Results are always written back.
func (c *Client) DisplayName(ctx context.Context, mr region.MacroRegion, puuid string, useCache bool) (string, error) {
	key := "account_" + puuid
	if useCache {
		if v, ok := c.cache.Get(key); ok {
			return v.(string), nil
		}
	}

	acc, err := c.AccountByPUUID(ctx, mr, puuid)
	if err != nil {
		return "", err
	}

	name := acc.GameName + "#" + acc.TagLine
	c.cache.Set(key, name, constants.AccountCacheTTL)
	return name, nil
}

// LeagueEntriesByPUUID fetches every ranked-queue entry for a PUUID on its
// shard. An empty list is a valid answer, not a failure.
func (c *Client) LeagueEntriesByPUUID(ctx context.Context, shard, puuid string) ([]LeagueEntry, error) {
	endpoint := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s?api_key=%s",
		c.host(shard), url.PathEscape(puuid), c.apiKey)

	entries, err := doRequest[[]LeagueEntry](ctx, c, endpoint)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

// SoloQueueRank returns the solo-queue rank for a PUUID, served from the
// cache when useCache is set. A player with no solo-queue entry is
// reported as unranked; that answer is not cached, matching how a fresh
// account starts showing a rank the moment its first placement lands.
func (c *Client) SoloQueueRank(ctx context.Context, shard, puuid string, useCache bool) (domain.Rank, error) {
	key := "elo-" + puuid
	if useCache {
		if v, ok := c.cache.Get(key); ok {
			return v.(domain.Rank), nil
		}
	}

	entries, err := c.LeagueEntriesByPUUID(ctx, shard, puuid)
	if err != nil {
		return domain.Rank{}, err
	}

	var solo *LeagueEntry
	for i := range entries {
		if entries[i].QueueType == SoloQueue {
			solo = &entries[i]
			break
		}
	}
	if solo == nil {
		return domain.Unranked, nil
	}

	tier, err := domain.ParseTier(solo.Tier)
	if err != nil {
		return domain.Rank{}, &LookupError{StatusCode: fasthttp.StatusOK, Status: err.Error()}
	}
	division, err := domain.ParseDivision(solo.Rank)
	if err != nil {
		return domain.Rank{}, &LookupError{StatusCode: fasthttp.StatusOK, Status: err.Error()}
	}

	rank := domain.Rank{Tier: tier, Division: division, LeaguePoints: solo.LeaguePoints}
	c.cache.Set(key, rank, constants.EloCacheTTL)
	return rank, nil
}

func doRequest[T any](ctx context.Context, client *Client, endpoint string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(endpoint)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &LookupError{
			StatusCode: resp.StatusCode(),
			Status:     fmt.Sprintf("%d %s", resp.StatusCode(), http.StatusText(resp.StatusCode())),
		}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, &LookupError{StatusCode: resp.StatusCode(), Status: "malformed response body"}
	}
	return &result, nil
}
