package trade

// Tag is a production capability of a settlement. Tags double as cargo
// categories: a settlement tagged Wool produces Wool-category cargo.
type Tag string

const (
	TagTrade       Tag = "Trade"
	TagAgriculture Tag = "Agriculture"
	TagGrain       Tag = "Grain"
	TagWool        Tag = "Wool"
	TagMetal       Tag = "Metal"
	TagOre         Tag = "Ore"
	TagFish        Tag = "Fish"
	TagTimber      Tag = "Timber"
	TagWine        Tag = "Wine"
	TagBrandy      Tag = "Brandy"
	TagLivestock   Tag = "Livestock"
	TagSalt        Tag = "Salt"
	TagCloth       Tag = "Cloth"
	TagFurs        Tag = "Furs"
	TagPottery     Tag = "Pottery"
)

// knownTags is the exhaustive set of recognized production tags. Tags outside
// this set are surfaced as configuration warnings at load time and ignored by
// the engines, never silently branched on.
var knownTags = map[Tag]struct{}{
	TagTrade: {}, TagAgriculture: {}, TagGrain: {}, TagWool: {},
	TagMetal: {}, TagOre: {}, TagFish: {}, TagTimber: {},
	TagWine: {}, TagBrandy: {}, TagLivestock: {}, TagSalt: {},
	TagCloth: {}, TagFurs: {}, TagPottery: {},
}

// Known reports whether the tag is a recognized production capability.
func (t Tag) Known() bool {
	_, ok := knownTags[t]
	return ok
}
