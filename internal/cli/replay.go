package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/folium"
	"github.com/aretw0/folium/internal/script"
	"github.com/aretw0/folium/pkg/domain"
	"github.com/aretw0/folium/pkg/editor"
)

// Replay applies the script to a document. With save the result is stored
// through the session manager; otherwise the stored state (if any) is only
// read and the result discarded.
func Replay(ctx context.Context, app *App, documentID string, s *script.Script, save bool) (*editor.State, error) {
	if documentID == "" {
		documentID = s.Document
	}
	if documentID == "" {
		return nil, fmt.Errorf("no document: pass one or name it in the script")
	}

	if save {
		_, after, err := app.Manager.Apply(ctx, documentID, s.Actions...)
		return after, err
	}

	stored, err := app.Manager.Load(ctx, documentID)
	if err != nil && !errors.Is(err, domain.ErrDocumentNotFound) {
		return nil, err
	}
	ed := folium.New(
		folium.WithLogger(app.Logger),
		folium.WithDocumentID(documentID),
		folium.WithBlockTypes(app.BlockTypes),
		folium.WithState(stored),
	)
	state, _ := ed.Dispatch(ctx, s.Actions...)
	return state, nil
}
