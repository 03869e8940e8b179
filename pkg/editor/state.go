package editor

import (
	"github.com/aretw0/folium/pkg/domain"
	"github.com/aretw0/folium/pkg/history"
)

// Transition is the signature of every state transition in this package.
type Transition = history.Transition[*State]

// State is the root editor state. Every field is an immutable value or
// handle, so two States can be compared with ==.
type State struct {
	Editor         *View             `json:"editor"`
	CurrentPost    *domain.Record    `json:"currentPost"`
	IsTyping       bool              `json:"isTyping"`
	Selection      *domain.Selection `json:"blockSelection"`
	Hovered        string            `json:"hoveredBlock,omitempty"`
	BlocksMode     *domain.Record    `json:"blocksMode"`
	InsertionPoint *InsertionPoint   `json:"blockInsertionPoint"`
	Preferences    *Preferences      `json:"preferences"`
	Panel          string            `json:"panel"`
	Saving         *Saving           `json:"saving"`
	Notices        *Notices          `json:"notices"`
}

// New returns the root transition. types backs SETUP_EDITOR and may be nil.
//
// A nil *State stands for the initial state. The previous *State is returned
// when no slice changed.
func New(types BlockTypes) Transition {
	reducePreferences := preferencesReducer(types)

	return func(state *State, action domain.Action) *State {
		var prev State
		if state != nil {
			prev = *state
		}
		next := State{
			Editor:         reduceView(prev.Editor, action),
			CurrentPost:    reduceCurrentPost(prev.CurrentPost, action),
			IsTyping:       reduceIsTyping(prev.IsTyping, action),
			Selection:      reduceSelection(prev.Selection, action),
			Hovered:        reduceHovered(prev.Hovered, action),
			BlocksMode:     reduceBlocksMode(prev.BlocksMode, action),
			InsertionPoint: reduceInsertionPoint(prev.InsertionPoint, action),
			Preferences:    reducePreferences(prev.Preferences, action),
			Panel:          reducePanel(prev.Panel, action),
			Saving:         reduceSaving(prev.Saving, action),
			Notices:        reduceNotices(prev.Notices, action),
		}
		if state != nil && next == prev {
			return state
		}
		return &next
	}
}

// Initial returns the state before any action.
func Initial(types BlockTypes) *State {
	return New(types)(nil, domain.Action{})
}
