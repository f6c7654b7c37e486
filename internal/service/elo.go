package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"elo-tracker/internal/constants"
	"elo-tracker/internal/domain"
	"elo-tracker/internal/region"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const noDataMessage = "Nenhuma conta foi adicionada ainda. Por favor, adicione uma conta para ver o ELO."

const defaultSeparator = " ───────────────────────────── "

// Cosmetic separator overrides for specific channels.
var separatorOverrides = map[string]string{
	"korris": " ───────────────★────────────── ",
}

func separatorFor(identifier string) string {
	if sep, ok := separatorOverrides[identifier]; ok {
		return sep
	}
	return defaultSeparator
}

var tierLabels = map[domain.Tier]string{
	domain.TierUnranked:    "UNRANKED",
	domain.TierIron:        "Ferro",
	domain.TierBronze:      "Bronze",
	domain.TierSilver:      "Prata",
	domain.TierGold:        "Ouro",
	domain.TierPlatinum:    "Platina",
	domain.TierEmerald:     "Esmeralda",
	domain.TierDiamond:     "Diamante",
	domain.TierMaster:      "Mestre",
	domain.TierGrandmaster: "Grão-Mestre",
	domain.TierChallenger:  "Desafiante",
}

// RosterStore is the slice of the roster repository the service consumes.
type RosterStore interface {
	Add(ctx context.Context, identifier string, ref domain.SummonerRef) error
	Remove(ctx context.Context, identifier string, ref domain.SummonerRef) error
	Get(ctx context.Context, identifier string) ([]domain.SummonerRef, error)
}

// EloService aggregates the ranks of every account on a roster into one
// formatted line.
type EloService struct {
	riot     RiotAPI
	resolver *ResolverService
	roster   RosterStore
	logger   zerolog.Logger
}

func NewEloService(riot RiotAPI, resolver *ResolverService, roster RosterStore, logger zerolog.Logger) *EloService {
	return &EloService{riot: riot, resolver: resolver, roster: roster, logger: logger}
}

type rankedAccount struct {
	Name string
	Rank domain.Rank
}

// Summary renders the rank line for an identifier, best account first.
// One failed lookup fails the whole summary; a partial roster is never
// shown.
func (s *EloService) Summary(ctx context.Context, identifier string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	refs, err := s.roster.Get(ctx, identifier)
	if err != nil {
		return "", fmt.Errorf("failed to read roster: %w", err)
	}
	if len(refs) == 0 {
		s.logger.Debug().Str("identifier", identifier).Msg("empty roster")
		return noDataMessage, nil
	}

	accounts := make([]rankedAccount, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.MaxConcurrentLookups)
	for i, ref := range refs {
		g.Go(func() error {
			name, err := s.riot.DisplayName(gctx, region.Resolve(ref.Shard), ref.PUUID, true)
			if err != nil {
				return err
			}
			rank, err := s.riot.SoloQueueRank(gctx, ref.Shard, ref.PUUID, true)
			if err != nil {
				return err
			}
			accounts[i] = rankedAccount{Name: name, Rank: rank}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("identifier", identifier).Msg("failed to aggregate ranks")
		return "", err
	}

	// Presentation order is the sort, never fan-out completion order.
	slices.SortStableFunc(accounts, func(a, b rankedAccount) int {
		return b.Rank.Compare(a.Rank)
	})

	lines := make([]string, len(accounts))
	for i, acc := range accounts {
		lines[i] = renderLine(acc)
	}

	sep := separatorFor(identifier)
	s.logger.Info().Str("identifier", identifier).Int("accounts", len(accounts)).Msg("summary rendered")
	return sep + strings.Join(lines, sep) + sep, nil
}

func renderLine(acc rankedAccount) string {
	label := tierLabels[acc.Rank.Tier]
	if !acc.Rank.Tier.HasDivision() {
		return fmt.Sprintf("%s - %s %d LP", acc.Name, label, acc.Rank.LeaguePoints)
	}
	return fmt.Sprintf("%s - %s %s %d LP", acc.Name, label, acc.Rank.Division, acc.Rank.LeaguePoints)
}

// Add resolves an account string and registers it under identifier.
func (s *EloService) Add(ctx context.Context, identifier, input string) (string, error) {
	acc, err := s.resolver.Resolve(ctx, input)
	if err != nil {
		return "", err
	}

	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	if err := s.roster.Add(dbCtx, identifier, acc.Ref); err != nil {
		return "", err
	}

	s.logger.Info().Str("identifier", identifier).Str("ref", acc.Ref.Encode()).Msg("account added")
	return fmt.Sprintf("A conta %s#%s(%s) foi adicionada!", acc.GameName, acc.TagLine, acc.Ref.Shard), nil
}

// Remove resolves an account string and drops it from identifier's roster.
func (s *EloService) Remove(ctx context.Context, identifier, input string) (string, error) {
	acc, err := s.resolver.Resolve(ctx, input)
	if err != nil {
		return "", err
	}

	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	if err := s.roster.Remove(dbCtx, identifier, acc.Ref); err != nil {
		return "", err
	}

	s.logger.Info().Str("identifier", identifier).Str("ref", acc.Ref.Encode()).Msg("account removed")
	return fmt.Sprintf("A conta %s#%s(%s) foi removida!", acc.GameName, acc.TagLine, acc.Ref.Shard), nil
}
