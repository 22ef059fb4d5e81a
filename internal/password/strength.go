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

import (
	"fmt"
	"unicode/utf8"
)

// Level is a coarse strength bucket derived from a score.
type Level string

const (
	LevelWeak      Level = "weak"
	LevelFair      Level = "fair"
	LevelGood      Level = "good"
	LevelStrong    Level = "strong"
	LevelExcellent Level = "excellent"
)

// Rank orders levels from weak (0) to excellent (4). Unknown levels rank -1.
func (l Level) Rank() int {
	switch l {
	case LevelWeak:
		return 0
	case LevelFair:
		return 1
	case LevelGood:
		return 2
	case LevelStrong:
		return 3
	case LevelExcellent:
		return 4
	default:
		return -1
	}
}

// MaxScore is the upper bound of Strength.Score.
const MaxScore = 100

// commonPasswordCap bounds the score of passwords on the common list.
const commonPasswordCap = 10

// LevelForScore maps a score to its level. It is a non-decreasing step
// function of score.
func LevelForScore(score int) Level {
	switch {
	case score < 40:
		return LevelWeak
	case score < 60:
		return LevelFair
	case score < 75:
		return LevelGood
	case score < 90:
		return LevelStrong
	default:
		return LevelExcellent
	}
}

// Strength is the outcome of AssessStrength.
type Strength struct {
	Score       int      `json:"score"`
	Level       Level    `json:"level"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// AssessStrength scores pw from 0 to 100 for user feedback. It never fails;
// use Validate to enforce a policy. When policy is nil only the generic
// suggestions are produced.
func AssessStrength(pw string, policy *Policy) Strength {
	n := utf8.RuneCountInString(pw)
	c := classify(pw)
	var score int
	var suggestions []string

	if n >= 8 {
		score += 20
	} else {
		score += n * 2
	}
	if n >= 12 {
		score += 10
	}
	if n >= 16 {
		score += 10
	}
	if policy != nil && n < policy.MinLength {
		suggestions = append(suggestions, fmt.Sprintf("Use at least %d characters", policy.MinLength))
	} else if n < 12 {
		suggestions = append(suggestions, "Use 12 or more characters")
	}

	if c.lower {
		score += 10
	} else {
		suggestions = append(suggestions, "Add lowercase letters")
	}
	if c.upper {
		score += 10
	} else {
		suggestions = append(suggestions, "Add uppercase letters")
	}
	if c.digit {
		score += 10
	} else {
		suggestions = append(suggestions, "Add numbers")
	}
	if c.symbol {
		score += 15
	} else {
		suggestions = append(suggestions, "Add special characters")
	}

	if longestRun(pw) < 3 {
		score += 5
	} else {
		suggestions = append(suggestions, "Avoid repeating the same character")
	}
	if !hasSequence(pw) {
		score += 5
	} else {
		suggestions = append(suggestions, `Avoid sequences like "123" or "abc"`)
	}

	if n > 0 {
		score += uniqueRunes(pw) * 10 / n
	}

	if IsCommon(pw) {
		score = min(score, commonPasswordCap)
		suggestions = append(suggestions, "Avoid commonly used passwords")
	}

	score = min(max(score, 0), MaxScore)
	return Strength{Score: score, Level: LevelForScore(score), Suggestions: suggestions}
}
