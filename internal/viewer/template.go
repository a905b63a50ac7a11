package viewer

import (
	"strings"
	"text/template"
)

// viewerTemplate is the fixed outer script: cached dataset load, a
// session-scoped index, Previous/Random/Next navigation with modular
// wrap-around, a direct-index jump clamped to the split bounds, and the
// trailing display_instance call. The generated code is spliced in between.
const viewerTemplate = `import streamlit as st
import random
from datasets import load_dataset

# Cache the dataset loading
@st.cache_resource
def get_dataset():
    return load_dataset("{{.Dataset}}")

# Get the dataset
dataset = get_dataset()
split = "{{.Split}}"
data = dataset[split]

# Session state for index tracking
if 'current_index' not in st.session_state:
    st.session_state.current_index = 0

# Navigation controls
st.title("Dataset Viewer: {{.Dataset}}")

col1, col2, col3, col4 = st.columns([1, 1, 1, 2])

with col1:
    if st.button("⬅️ Previous"):
        st.session_state.current_index = (st.session_state.current_index - 1) % len(data)

with col2:
    if st.button("Random 🎲"):
        st.session_state.current_index = random.randint(0, len(data) - 1)

with col3:
    if st.button("Next ➡️"):
        st.session_state.current_index = (st.session_state.current_index + 1) % len(data)

with col4:
    st.session_state.current_index = st.number_input(
        "Go to index",
        min_value=0,
        max_value=len(data) - 1,
        value=st.session_state.current_index
    )

st.write(f"Showing instance {st.session_state.current_index} of {len(data) - 1}")

# Get current instance
instance = data[st.session_state.current_index]

{{.Code}}

# Always call display_instance with current instance
display_instance(instance)
`

var viewerTmpl = template.Must(template.New("viewer").Parse(viewerTemplate))

// renderViewer fills the outer template with the dataset, split, and the
// sanitized generated code.
func renderViewer(dataset, split, code string) (string, error) {
	var buf strings.Builder
	err := viewerTmpl.Execute(&buf, struct {
		Dataset string
		Split   string
		Code    string
	}{Dataset: dataset, Split: split, Code: code})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
