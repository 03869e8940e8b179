package editor

import "github.com/aretw0/folium/pkg/domain"

// Block editing modes.
const (
	ModeVisual = "visual"
	ModeHTML   = "html"
)

// DefaultPanel is the sidebar panel shown before any SET_ACTIVE_PANEL.
const DefaultPanel = "document"

func reduceIsTyping(state bool, action domain.Action) bool {
	switch action.Type {
	case domain.ActionStartTyping:
		return true
	case domain.ActionStopTyping:
		return false
	}
	return state
}

// reduceBlocksMode flips a block between its visual and html editors.
func reduceBlocksMode(state *domain.Record, action domain.Action) *domain.Record {
	if state == nil {
		state = domain.NewRecord(nil)
	}
	if action.Type != domain.ActionToggleBlockMode {
		return state
	}
	mode := ModeHTML
	if state.Value(action.UID) == ModeHTML {
		mode = ModeVisual
	}
	return state.Set(action.UID, mode)
}

// InsertionPoint is where the inserter will drop new blocks.
type InsertionPoint struct {
	Position *int `json:"position"`
	Visible  bool `json:"visible"`
}

func reduceInsertionPoint(state *InsertionPoint, action domain.Action) *InsertionPoint {
	if state == nil {
		state = &InsertionPoint{}
	}
	next := *state
	switch action.Type {
	case domain.ActionSetInsertionPoint:
		next.Position = copyInt(action.Position)
	case domain.ActionClearInsertionPoint:
		next.Position = nil
	case domain.ActionShowInsertionPoint:
		next.Visible = true
	case domain.ActionHideInsertionPoint:
		next.Visible = false
	default:
		return state
	}
	return &next
}

func reducePanel(state string, action domain.Action) string {
	if state == "" {
		state = DefaultPanel
	}
	if action.Type == domain.ActionSetActivePanel && action.Panel != "" {
		return action.Panel
	}
	return state
}

// Saving is the status of the last post update request.
type Saving struct {
	Requesting bool `json:"requesting"`
	Successful bool `json:"successful"`
	Error      any  `json:"error,omitempty"`
}

func reduceSaving(state *Saving, action domain.Action) *Saving {
	if state == nil {
		state = &Saving{}
	}
	switch action.Type {
	case domain.ActionRequestPostUpdate:
		return &Saving{Requesting: true}
	case domain.ActionRequestPostUpdateOK:
		return &Saving{Successful: true}
	case domain.ActionRequestPostUpdateError:
		return &Saving{Error: action.Error}
	}
	return state
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
