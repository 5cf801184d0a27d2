package economy

// Pop type numeric IDs as used inside save files. The game references pop
// types by these IDs in employment blocks.
const (
	popAristocrats = 0
	popArtisans    = 1
	popBureaucrats = 2
	popCapitalists = 3
	popClergymen   = 4
	popClerks      = 5
	popClerksAlt   = 6 // clerks appear under both 5 and 6
	popCraftsmen   = 7
	popFarmers     = 8
	popLabourers   = 9
	popOfficers    = 10
	popSoldiers    = 11
	popSlaves      = 12
)

// popTypeNames lists every pop type key as it appears inside province
// blocks. Extraction walks these keys per province.
var popTypeNames = []string{
	"aristocrats",
	"artisans",
	"bureaucrats",
	"capitalists",
	"clergymen",
	"clerks",
	"craftsmen",
	"farmers",
	"labourers",
	"officers",
	"soldiers",
	"slaves",
}
