package llm

import "testing"

func TestProvidersOrder(t *testing.T) {
	providers := Providers()
	expected := []string{"openai", "anthropic", "google", "groq", "sambanova"}
	if len(providers) != len(expected) {
		t.Fatalf("expected %d providers, got %d", len(expected), len(providers))
	}
	for i, name := range expected {
		if providers[i] != name {
			t.Errorf("expected provider %q at index %d, got %q", name, i, providers[i])
		}
	}
}

func TestKnownProvider(t *testing.T) {
	if !KnownProvider("openai") {
		t.Error("expected openai to be known")
	}
	if KnownProvider("ollama") {
		t.Error("expected ollama to be unknown")
	}
}

func TestModelsForReturnsCopy(t *testing.T) {
	models := ModelsFor("openai")
	if len(models) == 0 {
		t.Fatal("expected models for openai")
	}
	models[0] = "tampered"

	fresh := ModelsFor("openai")
	if fresh[0] == "tampered" {
		t.Error("ModelsFor must return a copy, not the catalog slice")
	}
}

func TestModelsForUnknownProvider(t *testing.T) {
	if models := ModelsFor("nope"); models != nil {
		t.Errorf("expected nil for unknown provider, got %v", models)
	}
}

func TestHasModel(t *testing.T) {
	if !HasModel("openai", "o3-mini") {
		t.Error("expected o3-mini to belong to openai")
	}
	if HasModel("openai", "claude-sonnet-4") {
		t.Error("expected claude-sonnet-4 to not belong to openai")
	}
	if HasModel("nope", "o3-mini") {
		t.Error("expected unknown provider to have no models")
	}
}

func TestDefaultModelFor(t *testing.T) {
	if got := DefaultModelFor("openai"); got != "o4-mini" {
		t.Errorf("expected first catalog model 'o4-mini', got %q", got)
	}
	if got := DefaultModelFor("nope"); got != "" {
		t.Errorf("expected empty default for unknown provider, got %q", got)
	}
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider("nope", "some-model", "key")
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}
