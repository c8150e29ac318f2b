package llm

import "testing"

func TestNewClient_Ollama(t *testing.T) {
	for _, provider := range []string{"", "ollama", " Ollama "} {
		client, err := NewClient(provider, "llama3", "")
		if err != nil {
			t.Fatalf("NewClient(%q) error: %v", provider, err)
		}
		ollamaClient, ok := client.(*OllamaClient)
		if !ok {
			t.Fatalf("expected OllamaClient, got %T", client)
		}
		if ollamaClient.baseURL != defaultOllamaBaseURL {
			t.Errorf("baseURL = %q, want %q", ollamaClient.baseURL, defaultOllamaBaseURL)
		}
	}
}

func TestNewClient_LMStudio(t *testing.T) {
	client, err := NewClient("lmstudio", "llama3", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	c, ok := client.(*OpenAIClient)
	if !ok {
		t.Fatalf("expected OpenAIClient, got %T", client)
	}
	if c.baseURL != defaultLMStudioBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, defaultLMStudioBaseURL)
	}
}

func TestNewClient_OpenAI(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewClient("openai", "", ""); err == nil {
		t.Fatal("expected error without OPENAI_API_KEY")
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	client, err := NewClient("openai", "", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if c := client.(*OpenAIClient); c.model != defaultOpenAIModel {
		t.Errorf("model = %q, want %q", c.model, defaultOpenAIModel)
	}
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient("copilot", "model", "")
	if err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestNewLMStudioClient_EmptyModel(t *testing.T) {
	if _, err := NewLMStudioClient(" ", ""); err == nil {
		t.Fatal("expected error for empty model")
	}
}
