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

package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/package-url/packageurl-go"
)

// BuildPurl constructs a package URL from the identity triple. Names
// containing a slash are split into namespace and name per the purl
// spec (npm scopes, go module paths, composer vendors).
func BuildPurl(ecosystem, name, version string) string {
	namespace := ""
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		namespace = name[:idx]
		name = name[idx+1:]
	}
	if ecosystem == "" {
		ecosystem = "generic"
	}
	return packageurl.NewPackageURL(ecosystem, namespace, name, version, nil, "").ToString()
}

// ComponentID derives the content-addressed component identifier from
// the purl. Identical (name, version, ecosystem) triples resolve to the
// same identifier across submissions, which makes the component upsert
// a no-op for unchanged components.
func ComponentID(purl string) string {
	sum := sha256.Sum256([]byte(purl))
	return hex.EncodeToString(sum[:])
}
