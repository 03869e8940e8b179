package editor

import (
	"maps"
	"slices"

	"github.com/aretw0/folium/pkg/domain"
)

// MaxRecentBlocks caps the recently used block list.
const MaxRecentBlocks = 8

// Preferences are the per-user editor settings.
// Maps and slices are never modified once a Preferences value is built.
type Preferences struct {
	BlockUsage            map[string]int  `json:"blockUsage"`
	RecentlyUsedBlocks    []string        `json:"recentlyUsedBlocks"`
	Mode                  string          `json:"mode"`
	IsSidebarOpened       bool            `json:"isSidebarOpened"`
	IsSidebarOpenedMobile bool            `json:"isSidebarOpenedMobile"`
	Panels                map[string]bool `json:"panels"`
	Features              map[string]bool `json:"features"`
}

// DefaultPreferences returns the settings of a new user.
func DefaultPreferences() *Preferences {
	return &Preferences{
		BlockUsage:         map[string]int{},
		RecentlyUsedBlocks: []string{},
		Mode:               ModeVisual,
		IsSidebarOpened:    true,
		Panels:             map[string]bool{"post-status": true},
		Features:           map[string]bool{"fixedToolbar": false},
	}
}

// preferencesReducer returns the preferences transition. types may be nil,
// in which case SETUP_EDITOR keeps every name and adds no common types.
func preferencesReducer(types BlockTypes) func(*Preferences, domain.Action) *Preferences {
	return func(state *Preferences, action domain.Action) *Preferences {
		if state == nil {
			state = DefaultPreferences()
		}

		switch action.Type {
		case domain.ActionInsertBlocks:
			blocks := liveBlocks(action.Blocks)
			if len(blocks) == 0 {
				return state
			}
			next := *state
			next.BlockUsage = maps.Clone(state.BlockUsage)
			if next.BlockUsage == nil {
				next.BlockUsage = map[string]int{}
			}
			recent := slices.Clone(state.RecentlyUsedBlocks)
			for _, b := range blocks {
				next.BlockUsage[b.Name]++
				recent = slices.DeleteFunc(recent, func(name string) bool { return name == b.Name })
				recent = slices.Insert(recent, 0, b.Name)
			}
			next.RecentlyUsedBlocks = capRecent(recent)
			return &next

		case domain.ActionSetupEditor:
			return setupPreferences(state, types)

		case domain.ActionToggleSidebar:
			next := *state
			if action.IsMobile {
				next.IsSidebarOpenedMobile = !state.IsSidebarOpenedMobile
			} else {
				next.IsSidebarOpened = !state.IsSidebarOpened
			}
			return &next

		case domain.ActionToggleSidebarPanel:
			next := *state
			next.Panels = toggle(state.Panels, action.Panel)
			return &next

		case domain.ActionSwitchMode:
			next := *state
			next.Mode = action.Mode
			return &next

		case domain.ActionToggleFeature:
			next := *state
			next.Features = toggle(state.Features, action.Feature)
			return &next
		}

		return state
	}
}

// setupPreferences drops block types that are no longer registered and tops
// the recent list up with common types.
func setupPreferences(state *Preferences, types BlockTypes) *Preferences {
	known := func(name string) bool { return types == nil || types.Has(name) }

	next := *state
	next.BlockUsage = make(map[string]int, len(state.BlockUsage))
	for name, uses := range state.BlockUsage {
		if known(name) {
			next.BlockUsage[name] = uses
		}
	}

	recent := make([]string, 0, MaxRecentBlocks)
	for _, name := range state.RecentlyUsedBlocks {
		if known(name) {
			recent = append(recent, name)
		}
	}
	if types != nil {
		for _, name := range types.Common() {
			if !slices.Contains(state.RecentlyUsedBlocks, name) && !slices.Contains(recent, name) {
				recent = append(recent, name)
			}
		}
	}
	next.RecentlyUsedBlocks = capRecent(recent)
	return &next
}

func capRecent(names []string) []string {
	if len(names) > MaxRecentBlocks {
		return names[:MaxRecentBlocks:MaxRecentBlocks]
	}
	return names
}

func toggle(flags map[string]bool, key string) map[string]bool {
	next := maps.Clone(flags)
	if next == nil {
		next = map[string]bool{}
	}
	next[key] = !flags[key]
	return next
}
