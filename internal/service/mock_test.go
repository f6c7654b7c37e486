package service

import (
	"context"
	"net/http"

	"elo-tracker/internal/domain"
	"elo-tracker/internal/region"
	"elo-tracker/internal/riot"
)

// mockRiot serves canned accounts and ranks keyed by riot id / PUUID.
type mockRiot struct {
	accounts map[string]*riot.Account // "name#tag" → account
	names    map[string]string        // puuid → display name
	ranks    map[string]domain.Rank   // puuid → solo-queue rank
	err      error
}

func (m *mockRiot) AccountByRiotID(_ context.Context, _ region.MacroRegion, gameName, tagLine string) (*riot.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	acc, ok := m.accounts[gameName+"#"+tagLine]
	if !ok {
		return nil, &riot.LookupError{StatusCode: http.StatusNotFound, Status: "404 Not Found"}
	}
	return acc, nil
}

func (m *mockRiot) DisplayName(_ context.Context, _ region.MacroRegion, puuid string, _ bool) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	name, ok := m.names[puuid]
	if !ok {
		return "", &riot.LookupError{StatusCode: http.StatusNotFound, Status: "404 Not Found"}
	}
	return name, nil
}

func (m *mockRiot) SoloQueueRank(_ context.Context, _, puuid string, _ bool) (domain.Rank, error) {
	if m.err != nil {
		return domain.Rank{}, m.err
	}
	rank, ok := m.ranks[puuid]
	if !ok {
		return domain.Unranked, nil
	}
	return rank, nil
}

// mockRoster keeps rosters in memory with set semantics.
type mockRoster struct {
	rosters map[string][]domain.SummonerRef
	err     error
}

func newMockRoster() *mockRoster {
	return &mockRoster{rosters: make(map[string][]domain.SummonerRef)}
}

func (m *mockRoster) Add(_ context.Context, identifier string, ref domain.SummonerRef) error {
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.rosters[identifier] {
		if existing == ref {
			return nil
		}
	}
	m.rosters[identifier] = append(m.rosters[identifier], ref)
	return nil
}

func (m *mockRoster) Remove(_ context.Context, identifier string, ref domain.SummonerRef) error {
	if m.err != nil {
		return m.err
	}
	refs := m.rosters[identifier]
	for i, existing := range refs {
		if existing == ref {
			m.rosters[identifier] = append(refs[:i], refs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockRoster) Get(_ context.Context, identifier string) ([]domain.SummonerRef, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rosters[identifier], nil
}
