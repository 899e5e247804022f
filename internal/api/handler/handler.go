// Package handler registers the admin and mobile HTTP operations.
package handler

import (
	"context"
	"database/sql"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wingbank/appconfig/internal/api/schema"
	"github.com/wingbank/appconfig/internal/events"
	"github.com/wingbank/appconfig/internal/server/middleware"
	"github.com/wingbank/appconfig/internal/util"
	"github.com/wingbank/appconfig/pkg/localized"
)

// listInput is the shared paging query contract. Page is zero-based.
type listInput struct {
	Search string `query:"search"`
	Page   int    `query:"page"`
	Size   int    `query:"size"`
}

// sanitize clamps paging values once at the API edge. The repository applies
// the same clamp, so the filter and the response envelope agree on the
// effective size and Last/TotalPages stay truthful for size=0 requests.
func (in *listInput) sanitize() {
	in.Size = util.SanitizeLimit(in.Size)
	if in.Page < 0 {
		in.Page = 0
	}
}

type idInput struct {
	ID string `path:"id"`
}

// mapErr converts storage errors into API errors.
func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return huma.Error404NotFound("not found")
	}
	return err
}

// emit dispatches a change event attributed to the authenticated user.
func emit(ctx context.Context, name, entityID string, data any) {
	events.Emit(ctx, events.New(name, entityID, middleware.UserFromContext(ctx), data))
}

type schemaOutput struct {
	Body schema.SchemaView
}

// buildSchemaView assembles the dynamic columns and empty form for the
// current language snapshot.
func buildSchemaView(langs []localized.Language, spec localized.AttributeSpec) schema.SchemaView {
	return schema.SchemaView{
		Languages: langs,
		Columns:   localized.BuildColumns(langs, spec),
		Form:      localized.BuildEmptyForm(langs, spec),
	}
}
