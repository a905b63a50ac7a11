package viewer

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"dataviewer/internal/hub"
)

const systemMessage = `You are a Python expert specializing in Streamlit and data visualization.
Create visualizations that are appropriate for the dataset's purpose and content.
Provide only raw Python code without markdown formatting.`

const basePrompt = `Generate a Streamlit Python script to visualize instances from the dataset "%s".
The script must define a function called 'display_instance' that takes a single parameter 'instance'
and visualizes it appropriately.

Dataset Information:
%s

The instance has these features and types: %s

Here's an example instance from the dataset:
%s

Requirements:
- Create a function called 'display_instance(instance)' that handles the visualization
- Display all fields appropriately (text, images, audio, etc.)
- Make it visually appealing with proper headers and sections
- Handle all data types properly
- Use st.columns where appropriate for layout
- Don't include any navigation controls (they're handled elsewhere)
- Do not include markdown code block markers
- Consider the dataset's purpose and content when designing the visualization
- Use the example instance as a guide for formatting and layout
%s
The function will be called with the current instance at the end of the script.
Only respond with the raw Python code, no explanations.`

// buildPrompt assembles the generation prompt from the dataset identifier,
// the card text (may be empty), the sample instance, and optional extra
// requirements.
func buildPrompt(dataset, card string, sample hub.Instance, extraPrompt string) string {
	features := make(map[string]string, len(sample))
	example := make(map[string]string, len(sample))
	for name, value := range sample {
		features[name] = featureType(value)
		example[name] = formatValue(value)
	}

	// Map keys are sorted by the JSON encoder, so the prompt is
	// deterministic for a given sample.
	featuresJSON, _ := json.MarshalIndent(features, "", "  ")
	exampleJSON, _ := json.MarshalIndent(example, "", "  ")

	cardSection := "No README available for this dataset."
	if card != "" {
		cardSection = "Dataset README:\n" + card
	}

	extraSection := ""
	if extraPrompt != "" {
		extraSection = "\nAdditional requirements:\n" + extraPrompt + "\n"
	}

	return fmt.Sprintf(basePrompt, dataset, cardSection, featuresJSON, exampleJSON, extraSection)
}

// featureType labels a decoded JSON value with a Python-ish type name, since
// the generated script consumes Python instances.
func featureType(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return "none"
	case string:
		return "str"
	case bool:
		return "bool"
	case float64:
		if value == math.Trunc(value) {
			return "int"
		}
		return "float"
	case []interface{}:
		return "list"
	case map[string]interface{}:
		return "dict"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// formatValue renders a feature value for the prompt: scalars verbatim,
// sequences as an element count, mappings as a key list, anything else as a
// type tag.
func formatValue(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return "None"
	case string, bool, float64:
		return fmt.Sprintf("%v", value)
	case []interface{}:
		return fmt.Sprintf("[list with %d elements]", len(value))
	case map[string]interface{}:
		keys := make([]string, 0, len(value))
		for k := range value {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "{dict with keys: " + strings.Join(keys, ", ") + "}"
	default:
		return fmt.Sprintf("[%T]", v)
	}
}
