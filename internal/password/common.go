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

package password

import "strings"

// commonPasswords is a fixed list of passwords seen most often in breach
// corpora. Matching is case-insensitive and exact.
var commonPasswords = map[string]struct{}{}

func init() {
	for _, pw := range []string{
		"123456", "123456789", "12345678", "12345", "1234567", "1234567890",
		"password", "password1", "password123", "password!", "passw0rd", "p@ssw0rd",
		"p@ssword", "qwerty", "qwerty123", "qwertyuiop", "azerty", "asdfgh",
		"zxcvbnm", "111111", "000000", "123123", "654321", "666666", "987654321",
		"abc123", "abcd1234", "iloveyou", "admin", "admin123", "administrator",
		"welcome", "welcome1", "welcome123", "letmein", "monkey", "dragon",
		"football", "baseball", "sunshine", "princess", "shadow", "master",
		"superman", "trustno1", "starwars", "whatever", "hello123", "login",
		"changeme", "secret", "default", "guest", "test123", "1q2w3e4r",
		"1qaz2wsx", "qazwsx", "michael", "charlie", "jessica", "summer2024",
		"winter2024", "spring2024", "autumn2024",
	} {
		commonPasswords[pw] = struct{}{}
	}
}

// IsCommon reports whether pw is on the common-password list.
func IsCommon(pw string) bool {
	_, ok := commonPasswords[strings.ToLower(pw)]
	return ok
}
