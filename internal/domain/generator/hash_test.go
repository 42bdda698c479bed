package generator

import "testing"

func baseSettings() Settings {
	return Settings{
		Tone:               "professional",
		Style:              "storytelling",
		Length:             "medium",
		Language:           "en",
		Purpose:            "thought-leadership",
		Audience:           "founders",
		EmojiUsage:         "light",
		IncludeCTA:         true,
		CustomInstructions: "mention the newsletter",
	}
}

func TestComputeHashDeterministic(t *testing.T) {
	a := ComputeHash("topic idea", baseSettings(), "reference")
	b := ComputeHash("topic idea", baseSettings(), "reference")
	if a != b {
		t.Fatalf("equal inputs produced different hashes: %s vs %s", a, b)
	}
}

func TestComputeHashSensitiveToEveryField(t *testing.T) {
	base := ComputeHash("topic idea", baseSettings(), "reference")

	mutations := map[string]func(*Settings){
		"tone":               func(s *Settings) { s.Tone = "casual" },
		"style":              func(s *Settings) { s.Style = "listicle" },
		"length":             func(s *Settings) { s.Length = "long" },
		"language":           func(s *Settings) { s.Language = "de" },
		"purpose":            func(s *Settings) { s.Purpose = "hiring" },
		"audience":           func(s *Settings) { s.Audience = "engineers" },
		"emojiUsage":         func(s *Settings) { s.EmojiUsage = "none" },
		"includeCta":         func(s *Settings) { s.IncludeCTA = false },
		"customInstructions": func(s *Settings) { s.CustomInstructions = "" },
	}
	for name, mutate := range mutations {
		settings := baseSettings()
		mutate(&settings)
		if ComputeHash("topic idea", settings, "reference") == base {
			t.Fatalf("changing %s did not change the hash", name)
		}
	}

	if ComputeHash("other idea", baseSettings(), "reference") == base {
		t.Fatal("changing input did not change the hash")
	}
	if ComputeHash("topic idea", baseSettings(), "") == base {
		t.Fatal("changing reference content did not change the hash")
	}
}

func TestComputeHashFieldBoundaries(t *testing.T) {
	// "ab"+"c" and "a"+"bc" in adjacent fields must not collide
	left := baseSettings()
	left.Tone = "ab"
	left.Style = "c"
	right := baseSettings()
	right.Tone = "a"
	right.Style = "bc"
	if ComputeHash("x", left, "") == ComputeHash("x", right, "") {
		t.Fatal("length prefix failed to separate adjacent fields")
	}
}

func TestCacheKeyIgnoresInput(t *testing.T) {
	settings := baseSettings()
	if CacheKey(settings) != CacheKey(settings) {
		t.Fatal("cache key not deterministic")
	}
	other := baseSettings()
	other.Tone = "casual"
	if CacheKey(settings) == CacheKey(other) {
		t.Fatal("different settings produced the same cache key")
	}
	if CacheKey(settings) == ComputeHash("input", settings, "") {
		t.Fatal("cache key must differ from the full content hash")
	}
}
