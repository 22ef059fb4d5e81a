// Copyright 2026 The OpenTrusty Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tenant

import "context"

// SlugLookup reports whether a slug is already claimed. It is implemented by
// the caller's tenant store.
type SlugLookup interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// SlugLookupFunc adapts a function to SlugLookup.
type SlugLookupFunc func(ctx context.Context, slug string) (bool, error)

// SlugExists calls f.
func (f SlugLookupFunc) SlugExists(ctx context.Context, slug string) (bool, error) {
	return f(ctx, slug)
}
