package controllers

import (
	"go.uber.org/fx"
)

// Module provides all controller constructors
var Module = fx.Options(
	fx.Provide(NewProjectController),
	fx.Provide(NewSnapshotController),
	fx.Provide(NewLanguageController),
)
