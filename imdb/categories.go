package imdb

import "log/slog"

// Fixed snake_case -> camelCase category tables, one per attribute
// family. These mirror the category ids the server emits today; an id
// missing from its table is logged at debug level and the entry dropped.

var creditCategories = map[string]string{
	"director":                  "director",
	"writer":                    "writer",
	"cast":                      "cast",
	"producer":                  "producer",
	"composer":                  "composer",
	"cinematographer":           "cinematographer",
	"editor":                    "editor",
	"casting_director":          "castingDirector",
	"production_designer":       "productionDesigner",
	"art_director":              "artDirector",
	"set_decorator":             "setDecorator",
	"costume_designer":          "costumeDesigner",
	"make_up_department":        "makeUpDepartment",
	"production_manager":        "productionManager",
	"assistant_director":        "assistantDirector",
	"art_department":            "artDepartment",
	"sound_department":          "soundDepartment",
	"special_effects":           "specialEffects",
	"visual_effects":            "visualEffects",
	"stunts":                    "stunts",
	"choreographer":             "choreographer",
	"camera_department":         "cameraDepartment",
	"animation_department":      "animationDepartment",
	"casting_department":        "castingDepartment",
	"costume_department":        "costumeDepartment",
	"editorial_department":      "editorialDepartment",
	"electrical_department":     "electricalDepartment",
	"location_management":       "locationManagement",
	"music_department":          "musicDepartment",
	"script_department":         "scriptDepartment",
	"transportation_department": "transportationDepartment",
	"production_department":     "productionDepartment",
	"miscellaneous":             "miscellaneous",
	"thanks":                    "thanks",
	"publicist":                 "publicist",
	"soundtrack":                "soundtrack",
	"manager":                   "manager",
	"legal":                     "legal",
	"talent_agent":              "talentAgent",
	"self":                      "self",
	"actor":                     "actor",
	"actress":                   "actress",
	"archive_footage":           "archiveFootage",
	"archive_sound":             "archiveSound",
}

var connectionCategories = map[string]string{
	"alternate_language_version_of": "alternateLanguageVersionOf",
	"edited_from":                   "editedFrom",
	"edited_into":                   "editedInto",
	"featured_in":                   "featuredIn",
	"features":                      "features",
	"followed_by":                   "followedBy",
	"follows":                       "follows",
	"referenced_in":                 "referencedIn",
	"references":                    "references",
	"remade_as":                     "remadeAs",
	"remake_of":                     "remakeOf",
	"spin_off":                      "spinOff",
	"spin_off_from":                 "spinOffFrom",
	"spoofed_in":                    "spoofedIn",
	"spoofs":                        "spoofs",
	"version_of":                    "versionOf",
}

var goofCategories = map[string]string{
	"anachronism":                 "anachronism",
	"audio_visual_error":          "audioVisualError",
	"audio_visual_unsynchronized": "audioVisualUnsynchronized",
	"boom_mic_visible":            "boomMicVisible",
	"character_error":             "characterError",
	"continuity":                  "continuity",
	"crew_or_equipment_visible":   "crewOrEquipmentVisible",
	"errors_in_geography":         "errorsInGeography",
	"factual_error":               "factualError",
	"miscellaneous":               "miscellaneous",
	"not_a_goof":                  "notAGoof",
	"plot_hole":                   "plotHole",
	"revealing_mistake":           "revealingMistake",
}

var companyCategories = map[string]string{
	"production":                "production",
	"distribution":              "distribution",
	"special_effects":           "specialEffects",
	"miscellaneous":             "miscellaneous",
	"sales_representatives_isa": "salesRepresentativesIsa",
}

var externalSiteCategories = map[string]string{
	"official": "official",
	"video":    "video",
	"photo":    "photo",
	"sound":    "sound",
	"misc":     "misc",
}

// remapCategory translates a server category id through the family's
// table. Unknown ids are dropped; the debug log is the only trace, per
// the documented drop-don't-crash policy.
func remapCategory(table map[string]string, family, id string) (string, bool) {
	key, ok := table[id]
	if !ok {
		slog.Debug("Unknown category id, dropping entry", "family", family, "category", id)
		return "", false
	}
	return key, true
}
