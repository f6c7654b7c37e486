package service

import (
	"context"
	"strings"

	"elo-tracker/internal/constants"
	"elo-tracker/internal/domain"
	"elo-tracker/internal/region"
	"elo-tracker/internal/riot"

	"github.com/rs/zerolog"
)

// MalformedAccountError is raised when an account string does not match
// the Name#Tag(shard) grammar. Its message is shown to the user as-is.
type MalformedAccountError struct {
	Input string
}

func (e *MalformedAccountError) Error() string {
	return "Use o formato GameName#Tag para adicionar uma conta."
}

// RiotAPI is the slice of the Riot client the services consume.
type RiotAPI interface {
	AccountByRiotID(ctx context.Context, mr region.MacroRegion, gameName, tagLine string) (*riot.Account, error)
	DisplayName(ctx context.Context, mr region.MacroRegion, puuid string, useCache bool) (string, error)
	SoloQueueRank(ctx context.Context, shard, puuid string, useCache bool) (domain.Rank, error)
}

// ParseAccountString splits "Name#Tag(shard)" into its parts. The shard
// suffix is optional and defaults to region.DefaultShard; name and tag are
// trimmed and must both be non-empty around a single '#'.
func ParseAccountString(input string) (shard, gameName, tagLine string, err error) {
	account, suffix, found := strings.Cut(input, "(")
	shard = region.DefaultShard
	if found {
		if s := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(suffix), ")"))); s != "" {
			shard = s
		}
	}

	account = strings.TrimSpace(account)
	if account == "" || strings.Count(account, "#") != 1 {
		return "", "", "", &MalformedAccountError{Input: input}
	}

	name, tag, _ := strings.Cut(account, "#")
	gameName = strings.TrimSpace(name)
	tagLine = strings.TrimSpace(tag)
	if gameName == "" || tagLine == "" {
		return "", "", "", &MalformedAccountError{Input: input}
	}

	return shard, gameName, tagLine, nil
}

// ResolvedAccount is a successfully resolved account string.
type ResolvedAccount struct {
	Ref      domain.SummonerRef
	GameName string
	TagLine  string
}

// ResolverService turns user-typed account strings into shard-qualified
// summoner refs via the account endpoint.
type ResolverService struct {
	riot   RiotAPI
	logger zerolog.Logger
}

func NewResolverService(riot RiotAPI, logger zerolog.Logger) *ResolverService {
	return &ResolverService{riot: riot, logger: logger}
}

// Resolve parses input, routes it to the right macro-region and resolves
// the PUUID. Malformed input and remote failures propagate unchanged.
func (s *ResolverService) Resolve(ctx context.Context, input string) (*ResolvedAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	shard, gameName, tagLine, err := ParseAccountString(input)
	if err != nil {
		return nil, err
	}

	mr := region.Resolve(shard)
	s.logger.Debug().
		Str("game_name", gameName).
		Str("tag_line", tagLine).
		Str("shard", shard).
		Str("macro_region", string(mr)).
		Msg("resolving account")

	acc, err := s.riot.AccountByRiotID(ctx, mr, gameName, tagLine)
	if err != nil {
		s.logger.Error().Err(err).Str("game_name", gameName).Str("tag_line", tagLine).Msg("failed to resolve account")
		return nil, err
	}

	return &ResolvedAccount{
		Ref:      domain.SummonerRef{Shard: shard, PUUID: acc.PUUID},
		GameName: acc.GameName,
		TagLine:  acc.TagLine,
	}, nil
}
