package region

// MacroRegion is one of the coarse shard groupings used by the Riot
// account endpoints.
type MacroRegion string

const (
	Americas MacroRegion = "americas"
	Asia     MacroRegion = "asia"
	Europe   MacroRegion = "europe"
)

// DefaultShard is assumed when an account string carries no shard suffix.
const DefaultShard = "br1"

var asiaShards = map[string]struct{}{
	"kr1": {},
	"jp1": {},
	"oc1": {},
	"ph2": {},
	"sg2": {},
	"th2": {},
	"vn2": {},
}

var europeShards = map[string]struct{}{
	"eun1": {},
	"euw1": {},
	"ru":   {},
	"tr1":  {},
}

// Resolve maps a platform shard to the macro-region serving its account
// lookups. Unknown shards route to americas; that is the catch-all the
// account API expects, not an error.
func Resolve(shard string) MacroRegion {
	if shard == "" {
		shard = DefaultShard
	}
	if _, ok := asiaShards[shard]; ok {
		return Asia
	}
	if _, ok := europeShards[shard]; ok {
		return Europe
	}
	return Americas
}
