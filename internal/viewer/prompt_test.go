package viewer

import (
	"strings"
	"testing"

	"dataviewer/internal/hub"
)

func TestBuildPromptContents(t *testing.T) {
	sample := hub.Instance{
		"image": map[string]interface{}{"bytes": "...", "path": "0.png"},
		"label": float64(5),
	}
	prompt := buildPrompt("mnist", "# MNIST\nHandwritten digits.", sample, "")

	for _, want := range []string{
		"mnist",
		"display_instance",
		"Dataset README:",
		"Handwritten digits.",
		`"label": "int"`,
		`"image": "dict"`,
		"{dict with keys: bytes, path}",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "Additional requirements:") {
		t.Error("empty extra prompt must not add a requirements section")
	}
}

func TestBuildPromptNoCard(t *testing.T) {
	prompt := buildPrompt("mnist", "", hub.Instance{"label": float64(1)}, "")
	if !strings.Contains(prompt, "No README available for this dataset.") {
		t.Error("missing card fallback not present")
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	sample := hub.Instance{"b": "x", "a": float64(1), "c": true}
	first := buildPrompt("ds", "", sample, "")
	for i := 0; i < 10; i++ {
		if got := buildPrompt("ds", "", sample, ""); got != first {
			t.Fatal("prompt not deterministic for identical input")
		}
	}
}

func TestFeatureType(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, "none"},
		{"string", "hello", "str"},
		{"bool", true, "bool"},
		{"whole float", float64(5), "int"},
		{"fractional float", 5.5, "float"},
		{"list", []interface{}{1, 2}, "list"},
		{"dict", map[string]interface{}{"k": 1}, "dict"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := featureType(tt.in); got != tt.want {
				t.Errorf("featureType(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, "None"},
		{"string", "hi", "hi"},
		{"number", float64(3), "3"},
		{"list", []interface{}{1, 2, 3}, "[list with 3 elements]"},
		{"dict", map[string]interface{}{"b": 1, "a": 2}, "{dict with keys: a, b}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.in); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
