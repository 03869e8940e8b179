package domain

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// History control actions, handled by the history wrapper itself.
const (
	ActionUndo = "UNDO"
	ActionRedo = "REDO"
)

// Document tree actions.
const (
	ActionResetBlocks           = "RESET_BLOCKS"
	ActionInsertBlocks          = "INSERT_BLOCKS"
	ActionUpdateBlockAttributes = "UPDATE_BLOCK_ATTRIBUTES"
	ActionUpdateBlock           = "UPDATE_BLOCK"
	ActionReplaceBlocks         = "REPLACE_BLOCKS"
	ActionRemoveBlocks          = "REMOVE_BLOCKS"
	ActionMoveBlocksUp          = "MOVE_BLOCKS_UP"
	ActionMoveBlocksDown        = "MOVE_BLOCKS_DOWN"
)

// Post actions.
const (
	ActionEditPost     = "EDIT_POST"
	ActionSetupNewPost = "SETUP_NEW_POST"
	ActionResetPost    = "RESET_POST"
	ActionUpdatePost   = "UPDATE_POST"
)

// Cursor actions.
const (
	ActionClearSelectedBlock = "CLEAR_SELECTED_BLOCK"
	ActionStartMultiSelect   = "START_MULTI_SELECT"
	ActionStopMultiSelect    = "STOP_MULTI_SELECT"
	ActionMultiSelect        = "MULTI_SELECT"
	ActionSelectBlock        = "SELECT_BLOCK"
	ActionUpdateFocus        = "UPDATE_FOCUS"
	ActionToggleBlockHovered = "TOGGLE_BLOCK_HOVERED"
	ActionStartTyping        = "START_TYPING"
	ActionStopTyping         = "STOP_TYPING"
)

// Interface actions.
const (
	ActionToggleBlockMode        = "TOGGLE_BLOCK_MODE"
	ActionSetInsertionPoint      = "SET_BLOCK_INSERTION_POINT"
	ActionClearInsertionPoint    = "CLEAR_BLOCK_INSERTION_POINT"
	ActionShowInsertionPoint     = "SHOW_INSERTION_POINT"
	ActionHideInsertionPoint     = "HIDE_INSERTION_POINT"
	ActionToggleSidebar          = "TOGGLE_SIDEBAR"
	ActionToggleSidebarPanel     = "TOGGLE_SIDEBAR_PANEL"
	ActionSwitchMode             = "SWITCH_MODE"
	ActionToggleFeature          = "TOGGLE_FEATURE"
	ActionSetupEditor            = "SETUP_EDITOR"
	ActionSetActivePanel         = "SET_ACTIVE_PANEL"
	ActionRequestPostUpdate      = "REQUEST_POST_UPDATE"
	ActionRequestPostUpdateOK    = "REQUEST_POST_UPDATE_SUCCESS"
	ActionRequestPostUpdateError = "REQUEST_POST_UPDATE_FAILURE"
	ActionCreateNotice           = "CREATE_NOTICE"
	ActionRemoveNotice           = "REMOVE_NOTICE"
)

// Action is a single, immutable request for a state change.
// Only Type is always meaningful; every other field is read by the
// transitions that care about it and ignored otherwise.
type Action struct {
	Type string `json:"type" yaml:"type" mapstructure:"type"`

	UID    string   `json:"uid,omitempty" yaml:"uid,omitempty" mapstructure:"uid"`
	UIDs   []string `json:"uids,omitempty" yaml:"uids,omitempty" mapstructure:"uids"`
	Blocks []*Block `json:"blocks,omitempty" yaml:"blocks,omitempty" mapstructure:"blocks"`

	// Position is the insertion index for INSERT_BLOCKS and
	// SET_BLOCK_INSERTION_POINT. Nil means "not given".
	Position *int `json:"position,omitempty" yaml:"position,omitempty" mapstructure:"position"`

	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty" mapstructure:"attributes"`
	Updates    map[string]any `json:"updates,omitempty" yaml:"updates,omitempty" mapstructure:"updates"`
	Edits      map[string]any `json:"edits,omitempty" yaml:"edits,omitempty" mapstructure:"edits"`
	Post       map[string]any `json:"post,omitempty" yaml:"post,omitempty" mapstructure:"post"`

	Start   string         `json:"start,omitempty" yaml:"start,omitempty" mapstructure:"start"`
	End     string         `json:"end,omitempty" yaml:"end,omitempty" mapstructure:"end"`
	Focus   map[string]any `json:"focus,omitempty" yaml:"focus,omitempty" mapstructure:"focus"`
	Config  map[string]any `json:"config,omitempty" yaml:"config,omitempty" mapstructure:"config"`
	Hovered bool           `json:"hovered,omitempty" yaml:"hovered,omitempty" mapstructure:"hovered"`

	Mode     string  `json:"mode,omitempty" yaml:"mode,omitempty" mapstructure:"mode"`
	Panel    string  `json:"panel,omitempty" yaml:"panel,omitempty" mapstructure:"panel"`
	Feature  string  `json:"feature,omitempty" yaml:"feature,omitempty" mapstructure:"feature"`
	IsMobile bool    `json:"isMobile,omitempty" yaml:"isMobile,omitempty" mapstructure:"isMobile"`
	Notice   *Notice `json:"notice,omitempty" yaml:"notice,omitempty" mapstructure:"notice"`
	NoticeID string  `json:"noticeId,omitempty" yaml:"noticeId,omitempty" mapstructure:"noticeId"`
	Error    any     `json:"error,omitempty" yaml:"error,omitempty" mapstructure:"error"`
}

// Notice is a user-facing message kept in the editor state.
type Notice struct {
	ID            string `json:"id" yaml:"id" mapstructure:"id"`
	Status        string `json:"status,omitempty" yaml:"status,omitempty" mapstructure:"status"`
	Content       string `json:"content,omitempty" yaml:"content,omitempty" mapstructure:"content"`
	IsDismissible bool   `json:"isDismissible,omitempty" yaml:"isDismissible,omitempty" mapstructure:"isDismissible"`
}

// DecodeAction builds an Action from a generic map, as produced by JSON or
// YAML decoders. Unknown keys are ignored.
func DecodeAction(raw map[string]any) (Action, error) {
	var action Action
	if err := decode(raw, &action); err != nil {
		return Action{}, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	if action.Type == "" {
		return Action{}, fmt.Errorf("%w: missing type", ErrInvalidAction)
	}
	return action, nil
}

// DecodeActions decodes a list of generic maps, failing on the first bad entry.
func DecodeActions(raw []map[string]any) ([]Action, error) {
	actions := make([]Action, 0, len(raw))
	for i, item := range raw {
		action, err := DecodeAction(item)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, action)
	}
	return actions, nil
}

func decode(input any, result any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		WeaklyTypedInput: true,
		ZeroFields:       true,
		DecodeHook:       recordHook,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

var (
	recordType    = reflect.TypeOf(Record{})
	recordPtrType = reflect.TypeOf(&Record{})
)

// recordHook turns plain maps into Records so that decoded blocks carry
// immutable attribute handles.
func recordHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != recordType && to != recordPtrType {
		return data, nil
	}
	m, ok := data.(map[string]any)
	if !ok {
		return data, nil
	}
	r := NewRecord(m)
	if to == recordType {
		return *r, nil
	}
	return r, nil
}
