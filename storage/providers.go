// Copyright (C) 2025 opencomply
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package storage

import (
	"os"

	"github.com/opencomply/sbomhub/shared"
	"go.uber.org/fx"
)

// NewArtifactStoreFromEnv selects the artifact backend. S3 when
// ARTIFACT_S3_ENDPOINT is set, local filesystem otherwise.
func NewArtifactStoreFromEnv() (shared.ArtifactStore, error) {
	if endpoint := os.Getenv("ARTIFACT_S3_ENDPOINT"); endpoint != "" {
		return NewS3Store(S3Config{
			Endpoint:  endpoint,
			Region:    os.Getenv("ARTIFACT_S3_REGION"),
			AccessKey: os.Getenv("ARTIFACT_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("ARTIFACT_S3_SECRET_KEY"),
			Bucket:    os.Getenv("ARTIFACT_S3_BUCKET"),
			UseSSL:    os.Getenv("ARTIFACT_S3_USE_SSL") == "true",
		})
	}
	return NewFilesystemStore(os.Getenv("ARTIFACT_DIR"))
}

var Module = fx.Options(
	fx.Provide(NewArtifactStoreFromEnv),
)
