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

package utils

// FireAndForgetSynchronizer abstracts "go func()". In production the
// async implementation is used; tests use the sync one to wait for
// background work deterministically.
type FireAndForgetSynchronizer interface {
	FireAndForget(fn func())
}

type asyncFireAndForgetSynchronizer struct{}

func (asyncFireAndForgetSynchronizer) FireAndForget(fn func()) {
	go fn()
}

func NewFireAndForgetSynchronizer() FireAndForgetSynchronizer {
	return asyncFireAndForgetSynchronizer{}
}

type syncFireAndForgetSynchronizer struct{}

func (syncFireAndForgetSynchronizer) FireAndForget(fn func()) {
	fn()
}

func NewSyncFireAndForgetSynchronizer() FireAndForgetSynchronizer {
	return syncFireAndForgetSynchronizer{}
}
