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

// Package storage retains the raw uploaded manifests so a snapshot can
// be re-processed or audited later. Artifacts are keyed by snapshot id.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type filesystemStore struct {
	baseDir string
}

// NewFilesystemStore keeps artifacts as flat files under baseDir.
func NewFilesystemStore(baseDir string) (*filesystemStore, error) {
	if baseDir == "" {
		baseDir = "sbom-artifacts"
	}
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("could not create artifact directory: %w", err)
	}
	return &filesystemStore{baseDir: baseDir}, nil
}

func (f *filesystemStore) path(snapshotID uuid.UUID) string {
	return filepath.Join(f.baseDir, snapshotID.String()+".manifest")
}

func (f *filesystemStore) Save(_ context.Context, snapshotID uuid.UUID, data []byte) error {
	return os.WriteFile(f.path(snapshotID), data, 0o640)
}

func (f *filesystemStore) Load(_ context.Context, snapshotID uuid.UUID) ([]byte, error) {
	return os.ReadFile(f.path(snapshotID))
}

func (f *filesystemStore) Delete(_ context.Context, snapshotID uuid.UUID) error {
	err := os.Remove(f.path(snapshotID))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
