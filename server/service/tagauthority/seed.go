package tagauthority

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/posawiki/posawiki/store"
)

// SeedResult summarizes one seeding run.
type SeedResult struct {
	CreatedAuthorities  int
	ExistingAuthorities int
	AddedAliases        int
	SkippedConflicts    int
}

type seedAuthority struct {
	name        string
	category    store.AuthorityCategory
	description string
	aliases     []string
}

// seedAuthorities is the hand-curated starter vocabulary covering the
// channel's most common tags. Several surface forms are plausible under
// more than one concept ("bushcraft cooking", "survival shelter"); the
// first authority in this list wins its key and later claims are
// skipped during seeding.
var seedAuthorities = []seedAuthority{
	{"Dogs", store.AuthorityCategoryOther, "Content featuring dogs as primary subjects",
		[]string{"dog", "dogs", "doggy", "good dog"}},
	{"Bushcraft", store.AuthorityCategoryActivity, "Traditional outdoor skills and self-reliance techniques",
		[]string{"bushcraft", "bushcrafting", "bushcrafter", "bushcraft skills", "bushcraft camp", "bushcraft shelter", "bushcraft cooking"}},
	{"Camping", store.AuthorityCategoryActivity, "Overnight outdoor accommodation",
		[]string{"camping", "camp", "campout", "wild camp", "wild camping", "going camping"}},
	{"Campfire Cooking", store.AuthorityCategoryActivity, "Preparing food over open fires",
		[]string{"campfire cooking", "cooking", "campfire food", "fire cooking", "camp food"}},
	{"Campfire", store.AuthorityCategoryEquipment, "Open fires for cooking and warmth",
		[]string{"campfire", "fire", "fire making"}},
	{"Winter Camping", store.AuthorityCategoryActivity, "Camping in winter conditions",
		[]string{"winter camping", "winter camp", "cold camping", "winter", "winter time"}},
	{"Spring Camping", store.AuthorityCategoryActivity, "Camping in spring conditions",
		[]string{"spring camping", "spring camp", "spring"}},
	{"Fall Camping", store.AuthorityCategoryActivity, "Camping in fall/autumn conditions",
		[]string{"fall camping", "fall camp", "autumn camping", "fall"}},
	{"Survival Structures", store.AuthorityCategoryActivity, "Building emergency or primitive shelters",
		[]string{"lean to", "lean-to", "quinzhee", "quinzee", "shelter", "survival shelter"}},
	{"Boundary Waters Canoe Area", store.AuthorityCategoryLocation, "Wilderness area in Minnesota/Ontario border region",
		[]string{"bwca", "bwcaw", "boundary waters"}},
	{"Dog Training", store.AuthorityCategoryActivity, "Training dogs for outdoor activities",
		[]string{"dog training", "camping dog"}},
	{"Fishing", store.AuthorityCategoryActivity, "Recreational angling activities",
		[]string{"fishing", "fish", "catch and cook", "catch and release", "trout fishing", "catching fish", "fisherman"}},
	{"Backpacking", store.AuthorityCategoryActivity, "Multi-day hiking with overnight gear",
		[]string{"backpacking", "backpacker", "backpack camping", "backpack"}},
	{"Adventure", store.AuthorityCategoryContentType, "Exciting outdoor experiences",
		[]string{"adventure", "adventurer"}},
	{"Survival Skills", store.AuthorityCategoryActivity, "Skills for surviving in challenging conditions",
		[]string{"survival", "survival skills", "survival food"}},
	{"Forest", store.AuthorityCategoryLocation, "Wooded natural areas",
		[]string{"forest", "woods"}},
	{"Canoe Camping", store.AuthorityCategoryActivity, "Camping accessed by canoe travel",
		[]string{"canoe camping", "canoe", "canoeing", "canoe trip", "paddle", "paddling", "canoe paddle"}},
	{"Gourmet Cooking", store.AuthorityCategoryActivity, "High-quality outdoor cooking",
		[]string{"gourmet cooking", "gourmet", "gourmet food"}},
	{"Nature", store.AuthorityCategoryOther, "Natural environments and phenomena",
		[]string{"nature", "outdoors", "outdoor", "nature sounds", "outside"}},
	{"Michigan", store.AuthorityCategoryLocation, "U.S. state in Great Lakes region",
		[]string{"michigan"}},
	{"Giveaways", store.AuthorityCategoryContentType, "Subscriber milestone giveaway videos",
		[]string{"giveaway", "giveaways", "give away", "subscriber giveaway", "subscribers giveaway"}},
	{"Unboxing", store.AuthorityCategoryContentType, "Fan mail and gear unboxing videos",
		[]string{"unboxing", "unbox", "unboxing gifts"}},
	{"Channel Updates", store.AuthorityCategoryContentType, "Channel status and personal update videos",
		[]string{"update", "channel update", "channel"}},
	{"Anniversary Content", store.AuthorityCategoryContentType, "Channel anniversary and milestone celebration videos",
		[]string{"anniversary"}},
	{"Christmas Content", store.AuthorityCategoryContentType, "Christmas and holiday themed videos",
		[]string{"christmas", "merry christmas", "santa", "santa clause"}},
	{"Subscriber Content", store.AuthorityCategoryContentType, "Content focused on subscriber engagement and community",
		[]string{"subscribers", "subscriber"}},
	{"Snow Conditions", store.AuthorityCategoryWeather, "Snow and winter storm weather conditions including blizzards",
		[]string{"snow", "snowstorm", "snowing", "snowy", "snow storm", "winter storm", "snowstorm camping", "camping in a snowstorm", "winter weather", "snow camping", "blizzard", "camping in a blizzard"}},
	{"Rain Conditions", store.AuthorityCategoryWeather, "Rain and storm weather conditions",
		[]string{"rain", "raining", "rainstorm", "storm", "thunderstorm", "camping in the rain", "fire in the rain", "severe weather"}},
	{"Cold Conditions", store.AuthorityCategoryWeather, "Cold temperature weather conditions",
		[]string{"cold", "frigid", "freezing", "cold weather"}},
	{"Canada", store.AuthorityCategoryLocation, "Canadian wilderness areas and adventures",
		[]string{"canada"}},
	{"Montana", store.AuthorityCategoryLocation, "Montana state adventures",
		[]string{"montana", "montana wilderness"}},
	{"Hiking", store.AuthorityCategoryActivity, "Day hiking and walking adventures",
		[]string{"hiking", "hike", "hiker", "hike and cook"}},
	{"Backcountry Camping", store.AuthorityCategoryActivity, "Remote wilderness camping in undeveloped natural areas",
		[]string{"backcountry camping", "wilderness camping", "remote camping", "wilderness", "wilderness area", "wild", "backcountry", "wilderness adventure", "camping in the wilderness"}},
	{"Overnight Camping", store.AuthorityCategoryActivity, "Single night camping experiences",
		[]string{"overnight", "overnight camping"}},
	{"Summer Camping", store.AuthorityCategoryActivity, "Camping during summer season",
		[]string{"summer camping", "summer"}},
	{"Snowshoeing", store.AuthorityCategoryActivity, "Winter snowshoe hiking adventures",
		[]string{"snowshoeing", "snowshoe", "snow shoeing", "snow shoe", "snowshoes", "showshoeing"}},
	{"Fire Skills", store.AuthorityCategoryActivity, "Fire making and fire management techniques",
		[]string{"fire skills", "fire skill", "firesteel"}},
	{"Humor Content", store.AuthorityCategoryContentType, "Comedic and entertaining video content",
		[]string{"funny", "hilarious", "silly", "funny dog", "silly dog", "silly dogs", "fun", "entertaining"}},
	{"Outdoorsman Content", store.AuthorityCategoryContentType, "Content focused on outdoor lifestyle and skills",
		[]string{"outdoorsman", "woodsman", "camper"}},
	{"ASMR Content", store.AuthorityCategoryContentType, "Relaxing audio content for ASMR experience",
		[]string{"asmr", "asmr fire", "asmr nature", "relaxing sounds", "fire asmr", "relaxation", "meditation"}},
	{"How-To Content", store.AuthorityCategoryContentType, "Educational and instructional outdoor content",
		[]string{"how to camp", "how to fish", "camping skills", "outdoor skills", "knife skills", "how to winter camp", "how to start a fire", "educational"}},
	{"Food Content", store.AuthorityCategoryContentType, "Food preparation and cooking content",
		[]string{"food", "meal", "dinner", "cooking outdoors", "meal prep", "delicious", "steak", "pasta"}},
	{"Hot Tent Camping", store.AuthorityCategoryActivity, "Winter camping with heated tent shelters",
		[]string{"hot tent", "wood burning stove"}},
	{"Tent Camping", store.AuthorityCategoryEquipment, "Camping with tent shelters",
		[]string{"tent", "tents"}},
	{"Unsuccessful Fishing Show", store.AuthorityCategoryContentType, "Episodic fishing adventure series",
		[]string{"unsuccessful fishing show", "ufs", "fishing show"}},
	{"Monty", store.AuthorityCategoryOther, "Primary dog companion, Rough Collie",
		[]string{"monty", "monty dog", "monty the collie"}},
	{"Rueger", store.AuthorityCategoryOther, "Dog companion, mixed breed",
		[]string{"rueger", "rueger dog"}},
	{"Matthew Posa", store.AuthorityCategoryOther, "Channel creator and host",
		[]string{"matthew posa"}},
	{"Lucas", store.AuthorityCategoryOther, "Friend and fellow outdoor content creator",
		[]string{"lucas", "captain teeny trout", "teeny trout"}},
	{"Funk", store.AuthorityCategoryOther, "Friend and outdoor adventure companion",
		[]string{"funk"}},
	{"Erin (Friend)", store.AuthorityCategoryOther, "Friend who appears in some adventures",
		[]string{"erin"}},
	{"Jake", store.AuthorityCategoryOther, "Friend and outdoor adventure companion",
		[]string{"jake"}},
	{"Ken", store.AuthorityCategoryOther, "Friend and outdoor adventure companion",
		[]string{"ken", "chainsaw ken"}},
	{"Rough Collie", store.AuthorityCategoryOther, "Long-haired herding dog breed",
		[]string{"rough collie", "collie"}},
}

func (s *Service) findAuthorityByName(ctx context.Context, name string) (*store.Authority, error) {
	normal := store.Normal
	authorities, err := s.store.ListAuthorities(ctx, &store.FindAuthority{RowStatus: &normal})
	if err != nil {
		return nil, err
	}
	for _, authority := range authorities {
		if strings.EqualFold(authority.CanonicalName, name) {
			return authority, nil
		}
	}
	return nil, nil
}

// Seed loads the starter vocabulary. Safe to run repeatedly: existing
// authorities are kept, aliases already claimed elsewhere are skipped
// alias by alias rather than failing the run.
func (s *Service) Seed(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{}

	for _, seed := range seedAuthorities {
		_, err := s.CreateAuthority(ctx, seed.name, seed.category, seed.description, nil)
		var duplicate *DuplicateNameError
		switch {
		case err == nil:
			result.CreatedAuthorities++
		case errors.As(err, &duplicate):
			result.ExistingAuthorities++
		default:
			return nil, errors.Wrapf(err, "failed to seed authority %q", seed.name)
		}

		authority, err := s.findAuthorityByName(ctx, seed.name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load seeded authority %q", seed.name)
		}
		if authority == nil {
			return nil, errors.Errorf("seeded authority %q vanished", seed.name)
		}

		for _, alias := range seed.aliases {
			added, err := s.AddAliases(ctx, authority.UID, []AliasInput{{Text: alias}})
			if err != nil {
				var conflict *AliasConflictError
				if errors.As(err, &conflict) {
					result.SkippedConflicts++
					slog.Warn("seed alias skipped",
						slog.String("alias", alias),
						slog.String("wanted", seed.name),
						slog.String("claimedBy", conflict.ClaimedByName))
					continue
				}
				return nil, errors.Wrapf(err, "failed to seed alias %q", alias)
			}
			result.AddedAliases += len(added)
		}
	}

	slog.Info("authority seed finished",
		slog.Int("created", result.CreatedAuthorities),
		slog.Int("existing", result.ExistingAuthorities),
		slog.Int("aliases", result.AddedAliases),
		slog.Int("skipped", result.SkippedConflicts))
	return result, nil
}
