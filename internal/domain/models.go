package domain

import (
	"fmt"
	"strings"
)

// RefSeparator joins shard and PUUID when a SummonerRef is flattened for
// persistence. The roster store only holds flat strings.
const RefSeparator = "---"

// SummonerRef is a shard-qualified player identifier. PUUIDs are scoped to
// a shard on the league endpoints, so the shard always travels with the id.
type SummonerRef struct {
	Shard string
	PUUID string
}

func (r SummonerRef) Encode() string {
	return r.Shard + RefSeparator + r.PUUID
}

func (r SummonerRef) String() string {
	return r.Encode()
}

// ParseRef decodes a persisted "shard---puuid" string.
func ParseRef(s string) (SummonerRef, error) {
	shard, puuid, ok := strings.Cut(s, RefSeparator)
	if !ok || shard == "" || puuid == "" {
		return SummonerRef{}, fmt.Errorf("malformed summoner ref %q", s)
	}
	return SummonerRef{Shard: shard, PUUID: puuid}, nil
}

// Tier is the major rank component. Values are ordered so that a direct
// comparison ranks tiers correctly.
type Tier int

const (
	TierUnranked Tier = iota + 1
	TierIron
	TierBronze
	TierSilver
	TierGold
	TierPlatinum
	TierEmerald
	TierDiamond
	TierMaster
	TierGrandmaster
	TierChallenger
)

var tierNames = map[Tier]string{
	TierUnranked:    "UNRANKED",
	TierIron:        "IRON",
	TierBronze:      "BRONZE",
	TierSilver:      "SILVER",
	TierGold:        "GOLD",
	TierPlatinum:    "PLATINUM",
	TierEmerald:     "EMERALD",
	TierDiamond:     "DIAMOND",
	TierMaster:      "MASTER",
	TierGrandmaster: "GRANDMASTER",
	TierChallenger:  "CHALLENGER",
}

var tiersByName = func() map[string]Tier {
	m := make(map[string]Tier, len(tierNames))
	for t, name := range tierNames {
		m[name] = t
	}
	return m
}()

func (t Tier) String() string {
	return tierNames[t]
}

// HasDivision reports whether the tier is subdivided. The apex tiers and
// UNRANKED carry no meaningful division.
func (t Tier) HasDivision() bool {
	switch t {
	case TierUnranked, TierMaster, TierGrandmaster, TierChallenger:
		return false
	}
	return true
}

func ParseTier(s string) (Tier, error) {
	t, ok := tiersByName[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown tier %q", s)
	}
	return t, nil
}

// Division is the minor rank component, I being the highest.
type Division int

const (
	DivisionIV Division = iota + 1
	DivisionIII
	DivisionII
	DivisionI
)

var divisionNames = map[Division]string{
	DivisionI:   "I",
	DivisionII:  "II",
	DivisionIII: "III",
	DivisionIV:  "IV",
}

var divisionsByName = func() map[string]Division {
	m := make(map[string]Division, len(divisionNames))
	for d, name := range divisionNames {
		m[name] = d
	}
	return m
}()

func (d Division) String() string {
	return divisionNames[d]
}

func ParseDivision(s string) (Division, error) {
	d, ok := divisionsByName[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown division %q", s)
	}
	return d, nil
}

// Rank is a player's current solo-queue standing.
type Rank struct {
	Tier         Tier
	Division     Division
	LeaguePoints int
}

// Unranked is the rank of an account with no solo-queue entry.
var Unranked = Rank{Tier: TierUnranked, Division: DivisionI, LeaguePoints: 0}

// Compare orders ranks from worst to best: tier first, then division for
// tiers that have one, then league points. Divisions compare equal on
// division-less tiers so the comparison falls through to LP.
func (r Rank) Compare(o Rank) int {
	if r.Tier != o.Tier {
		return int(r.Tier) - int(o.Tier)
	}
	if r.Tier.HasDivision() && r.Division != o.Division {
		return int(r.Division) - int(o.Division)
	}
	return r.LeaguePoints - o.LeaguePoints
}
