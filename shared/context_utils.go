package shared

import (
	"github.com/google/uuid"
	"github.com/opencomply/sbomhub/database/models"
)

// caller identity is threaded through the echo context by the router
// layer. With authentication removed there is exactly one caller, but
// the helpers keep the store contract explicit so tests can exercise
// multiple identities.

func SetCaller(ctx Context, callerID string) {
	ctx.Set("callerID", callerID)
}

func GetCaller(ctx Context) string {
	if callerID, ok := ctx.Get("callerID").(string); ok && callerID != "" {
		return callerID
	}
	return DefaultCallerID
}

// GetCallerID parses the caller identity into a uuid. Anything
// unparseable falls back to the default caller.
func GetCallerID(ctx Context) uuid.UUID {
	id, err := uuid.Parse(GetCaller(ctx))
	if err != nil {
		return uuid.MustParse(DefaultCallerID)
	}
	return id
}

func SetProject(ctx Context, project models.Project) {
	ctx.Set("project", project)
}

func GetProject(ctx Context) models.Project {
	project, ok := ctx.Get("project").(models.Project)
	if !ok {
		return models.Project{}
	}
	return project
}
