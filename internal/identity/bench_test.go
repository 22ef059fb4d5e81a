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

package identity

import (
	"testing"

	"github.com/vishwanth-dev/prephired-main-sub000/internal/password"
)

func BenchmarkValidateRegistrationForm(b *testing.B) {
	policy := password.DefaultPolicy()
	opts := &RegistrationOptions{DefaultCountryCode: "+1"}
	form := RegistrationForm{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Phone:           "(415) 555-0100",
		Password:        "Qm7!xR2#vL",
		ConfirmPassword: "Qm7!xR2#vL",
		AcceptTerms:     true,
		AcceptPrivacy:   true,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if res := ValidateRegistrationForm(form, &policy, opts); !res.IsValid() {
			b.Fatal(res.FirstError())
		}
	}
}

func BenchmarkValidateLoginForm(b *testing.B) {
	form := LoginForm{Identifier: "+14155550100", Password: "anything"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if res := ValidateLoginForm(form, ""); !res.IsValid() {
			b.Fatal(res.FirstError())
		}
	}
}
