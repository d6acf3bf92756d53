package stats

// The typed stat schema is fixed at build time. Every live source exposes
// exactly these fields; anything else lives in the dynamic counter table.

// FieldNames is the authoritative list of typed stat fields.
var FieldNames = []string{
	"daysPlayed",
	"totalMoneyEarned",
	"stepsTaken",
	"monstersSlain",
	"itemsCrafted",
	"itemsCooked",
	"fishCaught",
	"cropsHarvested",
	"oreMined",
	"treesChopped",
	"questsCompleted",
	"giftsGiven",
}

// SeededCounters are dynamic counter keys that must resolve to 0 even before
// the simulation has ever incremented them.
var SeededCounters = []string{
	"timesEnchanted",
	"bossesFelled",
	"trinketsFound",
	"caravanTradesMade",
	"shrinesRestored",
	"trashRecycled",
}

// Live is the read surface the simulation exposes for one player's current
// statistics. TypedField must be defined for every name in FieldNames; the
// map returned by DynamicCounters must not be mutated by the caller.
type Live interface {
	TypedField(name string) uint64
	DynamicCounters() map[string]uint64
}
